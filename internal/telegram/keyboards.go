package telegram

import "github.com/ahrie-ai/platform/internal/i18n"

// Callback data prefixes and values the handlers switch on.
const (
	CallbackMainMenu     = "main_menu"
	CallbackPrefixLang   = "lang_"
	CallbackPrefixMenu   = "menu_"
	CallbackPrefixProc   = "procedure_"
	CallbackPrefixClinic = "clinic_"
	CallbackPrefixQuick  = "quick_"
)

type label struct {
	en, ar, ko string
}

func (l label) text(lang i18n.Language) string {
	switch lang {
	case i18n.Arabic:
		return l.ar
	case i18n.Korean:
		return l.ko
	default:
		return l.en
	}
}

var (
	labelProcedures   = label{"🏥 Procedures", "🏥 العمليات", "🏥 시술 안내"}
	labelClinics      = label{"🏨 Clinics", "🏨 العيادات", "🏨 클리닉"}
	labelReviews      = label{"📹 Reviews", "📹 التقييمات", "📹 리뷰"}
	labelHalal        = label{"🕌 Halal Guide", "🕌 دليل الحلال", "🕌 할랄 가이드"}
	labelConsultation = label{"💬 Start Consultation", "💬 ابدأ الاستشارة", "💬 상담 시작"}
	labelLanguage     = label{"🌐 Language", "🌐 اللغة", "🌐 언어"}
	labelHelp         = label{"ℹ️ Help", "ℹ️ مساعدة", "ℹ️ 도움말"}
	labelBack         = label{"⬅️ Back", "⬅️ رجوع", "⬅️ 뒤로"}
)

var procedureLabels = []struct {
	key   string
	label label
}{
	{"rhinoplasty", label{"👃 Rhinoplasty", "👃 عملية الأنف", "👃 코 성형"}},
	{"double_eyelid", label{"👁 Double Eyelid", "👁 الجفن المزدوج", "👁 쌍꺼풀"}},
	{"facial_contouring", label{"🦴 Facial Contouring", "🦴 نحت الوجه", "🦴 윤곽 성형"}},
	{"fillers", label{"💉 Botox & Fillers", "💉 بوتوكس وفيلر", "💉 보톡스·필러"}},
	{"liposuction", label{"✨ Liposuction", "✨ شفط الدهون", "✨ 지방흡입"}},
	{"facelift", label{"🔄 Facelift", "🔄 شد الوجه", "🔄 리프팅"}},
}

// MainMenuKeyboard is the top-level menu shown after /start.
func MainMenuKeyboard(lang i18n.Language) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: labelProcedures.text(lang), CallbackData: CallbackPrefixMenu + "procedures"},
			{Text: labelClinics.text(lang), CallbackData: CallbackPrefixMenu + "clinics"},
		},
		{
			{Text: labelReviews.text(lang), CallbackData: CallbackPrefixMenu + "reviews"},
			{Text: labelHalal.text(lang), CallbackData: CallbackPrefixMenu + "halal"},
		},
		{
			{Text: labelConsultation.text(lang), CallbackData: CallbackPrefixQuick + "consultation"},
		},
		{
			{Text: labelLanguage.text(lang), CallbackData: CallbackPrefixMenu + "language"},
			{Text: labelHelp.text(lang), CallbackData: CallbackPrefixMenu + "help"},
		},
	}}
}

// ProceduresKeyboard lists the supported procedures two per row with a
// back button.
func ProceduresKeyboard(lang i18n.Language) *InlineKeyboardMarkup {
	var rows [][]InlineKeyboardButton
	var row []InlineKeyboardButton
	for _, p := range procedureLabels {
		row = append(row, InlineKeyboardButton{
			Text:         p.label.text(lang),
			CallbackData: CallbackPrefixProc + p.key,
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: labelBack.text(lang), CallbackData: CallbackMainMenu},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ClinicOption is one clinic offered on the clinics keyboard.
type ClinicOption struct {
	ID   string
	Name string
}

// ClinicsKeyboard lists clinics one per row; tapping one asks for its
// details.
func ClinicsKeyboard(lang i18n.Language, clinics []ClinicOption) *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(clinics)+1)
	for _, c := range clinics {
		rows = append(rows, []InlineKeyboardButton{{
			Text:         c.Name,
			CallbackData: CallbackPrefixClinic + c.ID,
		}})
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: labelBack.text(lang), CallbackData: CallbackMainMenu},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// LanguageKeyboard offers the supported languages. Labels stay in
// their own language regardless of the current one.
func LanguageKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: "🇸🇦 العربية", CallbackData: CallbackPrefixLang + "ar"},
			{Text: "🇬🇧 English", CallbackData: CallbackPrefixLang + "en"},
			{Text: "🇰🇷 한국어", CallbackData: CallbackPrefixLang + "ko"},
		},
	}}
}

// QuickActionsKeyboard follows an agent reply with the actions most
// relevant to the section that answered.
func QuickActionsKeyboard(lang i18n.Language, responseType string) *InlineKeyboardMarkup {
	var rows [][]InlineKeyboardButton
	switch responseType {
	case "medical":
		rows = append(rows, []InlineKeyboardButton{
			{Text: labelClinics.text(lang), CallbackData: CallbackPrefixMenu + "clinics"},
			{Text: labelReviews.text(lang), CallbackData: CallbackPrefixMenu + "reviews"},
		})
	case "review":
		rows = append(rows, []InlineKeyboardButton{
			{Text: labelProcedures.text(lang), CallbackData: CallbackPrefixMenu + "procedures"},
			{Text: labelClinics.text(lang), CallbackData: CallbackPrefixMenu + "clinics"},
		})
	case "cultural":
		rows = append(rows, []InlineKeyboardButton{
			{Text: labelHalal.text(lang), CallbackData: CallbackPrefixMenu + "halal"},
			{Text: labelProcedures.text(lang), CallbackData: CallbackPrefixMenu + "procedures"},
		})
	default:
		rows = append(rows, []InlineKeyboardButton{
			{Text: labelProcedures.text(lang), CallbackData: CallbackPrefixMenu + "procedures"},
			{Text: labelHalal.text(lang), CallbackData: CallbackPrefixMenu + "halal"},
		})
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: labelBack.text(lang), CallbackData: CallbackMainMenu},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// HelpKeyboard backs the /help message.
func HelpKeyboard(lang i18n.Language) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: labelConsultation.text(lang), CallbackData: CallbackPrefixQuick + "consultation"},
		},
		{
			{Text: labelBack.text(lang), CallbackData: CallbackMainMenu},
		},
	}}
}
