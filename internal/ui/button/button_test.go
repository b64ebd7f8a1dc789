package button

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/appshell/internal/ui/styles"
)

func TestRender_FocusBrackets(t *testing.T) {
	th := styles.Dark()

	tests := []struct {
		name  string
		props Props
		want  string
	}{
		{"unfocused", Props{Label: "Yes"}, "  Yes  "},
		{"focused", Props{Label: "Yes", Focused: true}, "[ Yes ]"},
		{"disabled focused", Props{Label: "Yes", Focused: true, Disabled: true}, "[ Yes ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansi.Strip(Render(th, tt.props)); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_WidthStableAcrossStates(t *testing.T) {
	th := styles.Light()
	base := Props{Label: "Delete", Variant: Destructive}

	w := lipgloss.Width(Render(th, base))
	for _, p := range []Props{
		{Label: "Delete", Variant: Destructive, Focused: true},
		{Label: "Delete", Variant: Destructive, Disabled: true},
		{Label: "Delete", Variant: Destructive, Loading: true},
	} {
		if got := lipgloss.Width(Render(th, p)); got != w {
			t.Errorf("width %d for %+v, want %d", got, p, w)
		}
	}
}

func TestRender_AllVariantsShowLabel(t *testing.T) {
	th := styles.Dark()
	for _, v := range []Variant{"", Default, Destructive, Outline, Secondary, Ghost} {
		got := ansi.Strip(Render(th, Props{Label: "Go", Variant: v}))
		if got != "  Go  " {
			t.Errorf("variant %q rendered %q", v, got)
		}
	}
}

func TestRow(t *testing.T) {
	got := ansi.Strip(Row(styles.Dark(),
		Props{Label: "Cancel", Focused: true},
		Props{Label: "Yes"},
	))
	if got != "[ Cancel ]   Yes  " {
		t.Errorf("Row = %q", got)
	}
}
