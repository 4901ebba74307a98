package domain

// Theme is the colour palette for one display mode.
type Theme struct {
	Bg        string `json:"bg"`
	Card      string `json:"card"`
	Text      string `json:"text"`
	Subtext   string `json:"subtext"`
	Border    string `json:"border"`
	Accent    string `json:"accent"`
	Widget    string `json:"widget"`
	Success   string `json:"success"`
	Error     string `json:"error"`
	Warning   string `json:"warning"`
	NavParams string `json:"navParams"`
}

// ThemeFor returns the palette for dark or light mode. Accent and status
// colours are shared by both modes.
func ThemeFor(dark bool) Theme {
	t := Theme{
		Accent:  "#4A6741",
		Success: "#2D4A23",
		Error:   "#E74C3C",
		Warning: "#E67E22",
	}
	if dark {
		t.Bg = "#0a0c0a"
		t.Card = "#141614"
		t.Text = "#FDFCFB"
		t.Subtext = "#8A9388"
		t.Border = "#252525"
		t.Widget = "rgba(255, 255, 255, 0.03)"
		t.NavParams = "rgba(10, 12, 10, 0.8)"
		return t
	}
	t.Bg = "#FDFCFB"
	t.Card = "#FFFFFF"
	t.Text = "#1A1C19"
	t.Subtext = "#7A8278"
	t.Border = "#E8E8E8"
	t.Widget = "#F3F7E9"
	t.NavParams = "rgba(255, 255, 255, 0.8)"
	return t
}
