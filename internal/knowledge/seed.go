package knowledge

import "context"

// Starter corpus loaded on first boot so agents have grounding before
// an admin curates the real knowledge base.
var starterDocs = map[string][]string{
	"medical": {
		"KHIDI (Korea Health Industry Development Institute) accredits Korean clinics and hospitals for international patients; accredited clinics provide medical interpreters and international patient coordinators.",
		"Rhinoplasty in Seoul typically costs $3,000-$8,000 USD depending on the technique; initial recovery takes 1-2 weeks and final results settle over 6-12 months.",
		"Double eyelid surgery usually costs $1,500-$4,000 USD with 5-7 days of visible swelling; non-incisional techniques recover faster than incisional ones.",
		"Several Gangnam clinics offer female surgeons and female-only consultation hours on request; patients can also request that only female staff are present during procedures.",
		"Halal-certified medication alternatives exist for most post-operative prescriptions; patients should tell their coordinator about halal requirements before surgery so anesthesia and painkillers can be reviewed.",
	},
	"cultural": {
		"Seoul Central Mosque in Itaewon is the largest mosque in Korea; daily prayers and Friday jumu'ah are held, and the surrounding streets have many halal restaurants and groceries.",
		"The Korea Muslim Federation (KMF) certifies halal restaurants in Korea; certified venues display a KMF halal certificate.",
		"Itaewon, Gangnam, and Myeongdong have the highest concentration of halal and Muslim-friendly dining in Seoul; many offer delivery to recovery accommodations.",
		"During Ramadan, most halal restaurants in Itaewon adjust hours for iftar; large hotels can arrange suhoor on request.",
		"Prayer rooms are available at Incheon Airport, major department stores in Myeongdong, and several Gangnam medical towers; travel apps show qibla direction and prayer times for Seoul.",
	},
}

// Prefill seeds starter documents for topics the repository does not
// have yet. Existing topics are left untouched.
func Prefill(ctx context.Context, repo Repository) error {
	for topic, docs := range starterDocs {
		existing, err := repo.GetDocuments(ctx, topic)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}
		if err := repo.AppendDocuments(ctx, topic, docs); err != nil {
			return err
		}
	}
	return nil
}
