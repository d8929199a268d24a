package styles

import "testing"

func TestGetPalette(t *testing.T) {
	tests := []struct {
		name ThemeName
		want *ColorPalette
	}{
		{ThemeDefault, DefaultPalette()},
		{ThemeMonokai, MonokaiPalette()},
		{ThemeDracula, DraculaPalette()},
		{ThemeNord, NordPalette()},
		{"unknown", DefaultPalette()},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			if got := GetPalette(tt.name); *got != *tt.want {
				t.Errorf("GetPalette(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPalettesAreComplete(t *testing.T) {
	for _, name := range BuiltinThemes() {
		p := GetPalette(ThemeName(name))
		for field, c := range map[string]string{
			"Primary": string(p.Primary), "Secondary": string(p.Secondary),
			"Warning": string(p.Warning), "Error": string(p.Error),
			"Muted": string(p.Muted), "Surface": string(p.Surface),
			"Text": string(p.Text), "Border": string(p.Border),
			"Variable": string(p.Variable),
		} {
			if !hexColorRegex.MatchString(c) {
				t.Errorf("%s.%s = %q, not a hex color", name, field, c)
			}
		}
	}
}

func TestForTheme(t *testing.T) {
	s := ForTheme("dracula")
	if s.Palette.Primary != DraculaPalette().Primary {
		t.Errorf("ForTheme(dracula) palette Primary = %q", s.Palette.Primary)
	}
	if got := s.PlanActive.GetForeground(); got != DraculaPalette().Primary {
		t.Errorf("PlanActive foreground = %v", got)
	}
	if got := s.CurrentLine.GetBackground(); got != DraculaPalette().Surface {
		t.Errorf("CurrentLine background = %v", got)
	}
}
