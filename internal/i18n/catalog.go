package i18n

// catalog holds every user-facing string, keyed by message key then
// language. Keep the three locales in sync when adding entries.
var catalog = map[Language]map[string]string{
	English: {
		"welcome_message": "Hello %s! 👋\n\nI'm Ahrie, your K-Beauty medical tourism assistant. I can help you explore procedures, compare Seoul clinics, watch real patient reviews, and plan a halal-friendly trip.\n\nHow can I help you today?",
		"start_follow_up": "Here are some things I can help with right away:",
		"help_message": "*How to use this assistant*\n\n• Just type your question in English, Arabic, or Korean\n• /procedures — browse popular procedures\n• /clinics — see recommended clinics\n• /language — change your language\n• /about — about this service\n\nI'll route your question to the right specialist and reply with everything in one message.",
		"choose_language":   "Please choose your language:",
		"language_updated":  "Language updated. I'll reply in English from now on. ✅",
		"procedures_menu":   "*Popular procedures*\n\nPick one to see details, typical prices, and recovery times:",
		"main_menu":         "What would you like to explore?",
		"about_message":     "*Ahrie — K-Beauty Medical Tourism Assistant*\n\nI help visitors from the Gulf and beyond navigate cosmetic procedures in Seoul: clinic comparisons, real YouTube patient reviews, halal food and prayer facilities, and women-friendly care options.\n\nThis service provides general information, not medical advice.",
		"unknown_command":   "I don't recognize that command. Try /help to see what I can do.",
		"error_message":     "Sorry, something went wrong on my side. Please try again in a moment. 🙏",
		"clinic_details":    "Here's what I know about %s:",
		"clinics_intro":     "*Recommended clinics in Seoul*",
		"badge_halal":       "Halal friendly",
		"badge_female":      "Female doctors available",
		"badge_arabic":      "Arabic-speaking staff",
		"no_results":        "I couldn't find anything matching that. Could you rephrase?",
		"typing_notice":     "Let me check that for you...",
		"guest_name":        "there",
		"disclaimer_short":  "Automated assistant. Not medical advice.",
		"disclaimer_medium": "This is an automated assistant. The information above is general guidance, not medical advice. Please consult a licensed physician before making decisions.",
		"disclaimer_full":   "This is an automated information assistant for medical tourism. Everything above is general in nature and not a substitute for professional medical advice, diagnosis, or treatment. Always consult a licensed healthcare provider, and verify clinic credentials independently before booking any procedure.",
	},
	Arabic: {
		"welcome_message": "مرحباً %s! 👋\n\nأنا آري، مساعدتك للسياحة العلاجية والتجميل الكوري. يمكنني مساعدتك في استكشاف العمليات، ومقارنة عيادات سيول، ومشاهدة تجارب حقيقية للمرضى، وتخطيط رحلة صديقة للحلال.\n\nكيف يمكنني مساعدتك اليوم؟",
		"start_follow_up": "إليك بعض الأشياء التي يمكنني مساعدتك بها فوراً:",
		"help_message": "*كيفية استخدام المساعد*\n\n• اكتب سؤالك بالعربية أو الإنجليزية أو الكورية\n• /procedures — تصفح العمليات الشائعة\n• /clinics — عرض العيادات الموصى بها\n• /language — تغيير اللغة\n• /about — حول هذه الخدمة\n\nسأوجه سؤالك إلى المختص المناسب وأرد عليك برسالة واحدة شاملة.",
		"choose_language":   "الرجاء اختيار لغتك:",
		"language_updated":  "تم تحديث اللغة. سأرد بالعربية من الآن فصاعداً. ✅",
		"procedures_menu":   "*العمليات الشائعة*\n\nاختر واحدة لعرض التفاصيل والأسعار وأوقات التعافي:",
		"main_menu":         "ماذا تود أن تستكشف؟",
		"about_message":     "*آري — مساعد السياحة العلاجية والتجميل الكوري*\n\nأساعد الزوار من الخليج وخارجه في التعرف على عمليات التجميل في سيول: مقارنة العيادات، وتقييمات حقيقية من يوتيوب، والطعام الحلال وأماكن الصلاة، وخيارات الرعاية المناسبة للنساء.\n\nهذه الخدمة تقدم معلومات عامة وليست نصيحة طبية.",
		"unknown_command":   "لا أعرف هذا الأمر. جرب /help لمعرفة ما يمكنني فعله.",
		"error_message":     "عذراً، حدث خطأ ما. الرجاء المحاولة مرة أخرى بعد قليل. 🙏",
		"clinic_details":    "إليك ما أعرفه عن %s:",
		"clinics_intro":     "*العيادات الموصى بها في سيول*",
		"badge_halal":       "صديقة للحلال",
		"badge_female":      "طبيبات متوفرات",
		"badge_arabic":      "طاقم يتحدث العربية",
		"no_results":        "لم أجد شيئاً مطابقاً. هل يمكنك إعادة الصياغة؟",
		"typing_notice":     "دعني أتحقق من ذلك...",
		"guest_name":        "ضيفنا العزيز",
		"disclaimer_short":  "مساعد آلي. ليست نصيحة طبية.",
		"disclaimer_medium": "هذا مساعد آلي. المعلومات أعلاه إرشادات عامة وليست نصيحة طبية. يرجى استشارة طبيب مرخص قبل اتخاذ أي قرار.",
		"disclaimer_full":   "هذا مساعد معلومات آلي للسياحة العلاجية. كل ما ورد أعلاه معلومات عامة ولا يغني عن الاستشارة الطبية المتخصصة أو التشخيص أو العلاج. استشر دائماً مقدم رعاية صحية مرخصاً، وتحقق من اعتمادات العيادة بشكل مستقل قبل حجز أي عملية.",
	},
	Korean: {
		"welcome_message": "안녕하세요 %s님! 👋\n\n저는 K-뷰티 의료관광 도우미 아리입니다. 시술 정보, 서울 클리닉 비교, 실제 환자 후기 영상, 할랄 친화적인 여행 계획까지 도와드릴 수 있어요.\n\n무엇을 도와드릴까요?",
		"start_follow_up": "지금 바로 도와드릴 수 있는 것들입니다:",
		"help_message": "*도우미 사용 방법*\n\n• 한국어, 영어, 아랍어로 질문을 입력하세요\n• /procedures — 인기 시술 둘러보기\n• /clinics — 추천 클리닉 보기\n• /language — 언어 변경\n• /about — 서비스 소개\n\n질문을 적절한 전문 상담원에게 전달하고 하나의 메시지로 답변해 드립니다.",
		"choose_language":   "언어를 선택해 주세요:",
		"language_updated":  "언어가 변경되었습니다. 이제 한국어로 답변해 드릴게요. ✅",
		"procedures_menu":   "*인기 시술*\n\n자세한 정보, 가격대, 회복 기간을 보려면 하나를 선택하세요:",
		"main_menu":         "무엇을 알아보고 싶으세요?",
		"about_message":     "*아리 — K-뷰티 의료관광 도우미*\n\n걸프 지역을 비롯한 해외 방문객이 서울에서 미용 시술을 받을 수 있도록 돕습니다. 클리닉 비교, 유튜브 실제 후기, 할랄 음식과 기도 시설, 여성 친화적 진료 옵션을 안내해 드립니다.\n\n이 서비스는 일반 정보를 제공하며 의료 조언이 아닙니다.",
		"unknown_command":   "알 수 없는 명령어입니다. /help 를 입력해 보세요.",
		"error_message":     "죄송합니다. 문제가 발생했어요. 잠시 후 다시 시도해 주세요. 🙏",
		"clinic_details":    "%s에 대해 알려드릴게요:",
		"clinics_intro":     "*서울 추천 클리닉*",
		"badge_halal":       "할랄 친화",
		"badge_female":      "여의사 진료 가능",
		"badge_arabic":      "아랍어 가능 직원",
		"no_results":        "일치하는 결과를 찾지 못했어요. 다시 질문해 주시겠어요?",
		"typing_notice":     "확인해 볼게요...",
		"guest_name":        "고객",
		"disclaimer_short":  "자동 응답 도우미입니다. 의료 조언이 아닙니다.",
		"disclaimer_medium": "이것은 자동 응답 도우미입니다. 위 내용은 일반적인 안내이며 의료 조언이 아닙니다. 결정 전에 반드시 전문의와 상담하세요.",
		"disclaimer_full":   "이것은 의료관광 정보를 제공하는 자동 응답 도우미입니다. 위의 모든 내용은 일반적인 정보이며 전문적인 의료 조언, 진단, 치료를 대체하지 않습니다. 시술 예약 전에 반드시 면허를 가진 의료진과 상담하고 클리닉 자격을 직접 확인하세요.",
	},
}
