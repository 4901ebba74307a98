package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/diagnosis"
	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// CommonDisease is a shortcut shown on the library page.
type CommonDisease struct {
	Name string `json:"name"`
	Hi   string `json:"hi"`
	Icon string `json:"icon"`
}

var commonDiseases = []CommonDisease{
	{Name: "Potato Blight", Hi: "आलू की अंगमारी", Icon: "🥔"},
	{Name: "Wheat Rust", Hi: "गेहूँ का रतुआ", Icon: "🌾"},
	{Name: "Rice Blast", Hi: "धान का झुलसा रोग", Icon: "🍚"},
	{Name: "Tomato Leaf Curl", Hi: "टमाटर का पर्ण कुंचन", Icon: "🍅"},
	{Name: "Sugarcane Red Rot", Hi: "गन्ने का लाल सड़न", Icon: "🎋"},
	{Name: "Corn Smut", Hi: "मक्का का कंडुआ", Icon: "🌽"},
}

// CommonDiseases returns a copy of the library shortcuts.
func (s *Service) CommonDiseases() []CommonDisease {
	out := make([]CommonDisease, len(commonDiseases))
	copy(out, commonDiseases)
	return out
}

// DiseaseInfo is a library entry.
type DiseaseInfo struct {
	Name        string   `json:"name"`
	Confidence  string   `json:"confidence"`
	Description string   `json:"description"`
	Treatment   []string `json:"treatment"`
	Prevention  []string `json:"prevention"`
}

// LookupDisease asks the model for a labeled entry about the query and
// normalizes it. An unlabeled answer still yields an entry: its text becomes
// the description.
func (s *Service) LookupDisease(ctx context.Context, in LookupInput) (DiseaseInfo, error) {
	if err := in.Validate(); err != nil {
		return DiseaseInfo{}, err
	}
	lang := in.Language
	if lang == "" {
		lang = domain.LanguageEN
	}

	text, err := s.chatter.Generate(ctx, diagnosis.LibraryPrompt(strings.TrimSpace(in.Query), lang))
	if err != nil {
		return DiseaseInfo{}, fmt.Errorf("lookup disease: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return DiseaseInfo{}, fmt.Errorf("lookup disease: %w",
			domain.NewUpstreamError(domain.ErrEmptyResponse, "Empty response from model"))
	}

	r := diagnosis.Normalize(text)
	name := r.Disease
	if name == diagnosis.FallbackDisease {
		name = strings.TrimSpace(in.Query)
	}

	return DiseaseInfo{
		Name:        name,
		Confidence:  r.Confidence,
		Description: r.Description,
		Treatment:   diagnosis.SplitSentences(r.Treatment),
		Prevention:  diagnosis.SplitSentences(r.Prevention),
	}, nil
}
