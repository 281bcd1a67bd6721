package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/project-estimator/internal/catalogue"
)

func TestTotal_DevelopmentScenario(t *testing.T) {
	cat := testCatalogue()
	auth, _ := cat.FindFeature("web-app", "auth")
	payments, _ := cat.FindFeature("web-app", "payments")

	sel := Selection{}.
		ToggleCategory(catalogue.CategoryDevelopment).
		ToggleService(cat["web-app"]).
		ToggleFeature("web-app", auth).
		ToggleFeature("web-app", payments)

	require.Equal(t, "1700", Total(sel).String())

	sel = sel.ToggleService(cat["web-app"])
	require.True(t, Total(sel).IsZero())
	require.Empty(t, sel.Features("web-app"))
	require.Equal(t, 0, sel.FeatureCount())
}

func TestTotal_IndependentOfOperationOrder(t *testing.T) {
	cat := testCatalogue()
	auth, _ := cat.FindFeature("web-app", "auth")
	i18n, _ := cat.FindFeature("web-app", "i18n")
	ci, _ := cat.FindFeature("cloud", "ci")

	a := Selection{}.
		ToggleService(cat["web-app"]).
		ToggleFeature("web-app", auth).
		ToggleFeature("web-app", i18n).
		ToggleService(cat["cloud"]).
		ToggleFeature("cloud", ci)

	b := Selection{}.
		ToggleService(cat["cloud"]).
		ToggleFeature("cloud", ci).
		ToggleService(cat["web-app"]).
		ToggleFeature("web-app", i18n).
		ToggleFeature("web-app", ci).
		ToggleFeature("web-app", ci).
		ToggleFeature("web-app", auth)

	require.True(t, a.Equal(b))
	require.True(t, Total(a).Equal(Total(b)))
	require.Equal(t, "1600", Total(a).String())
}

func TestTotal_EmptyAndZeroPriced(t *testing.T) {
	require.True(t, Total(Selection{}).IsZero())

	free := catalogue.Feature{ID: "free", Name: "Free"}
	sel := Selection{}.ToggleService(catalogue.Service{ID: "x", Name: "X"}).ToggleFeature("x", free)
	require.True(t, Total(sel).IsZero())
}

func TestBreakdown_SumsToTotal(t *testing.T) {
	cat := testCatalogue()
	auth, _ := cat.FindFeature("web-app", "auth")
	payments, _ := cat.FindFeature("web-app", "payments")
	ci, _ := cat.FindFeature("cloud", "ci")

	sel := Selection{}.
		ToggleService(cat["web-app"]).
		ToggleService(cat["cloud"]).
		ToggleFeature("web-app", auth).
		ToggleFeature("web-app", payments).
		ToggleFeature("cloud", ci)

	lines := Breakdown(sel)
	require.Len(t, lines, 2)
	require.Equal(t, "Cloud Setup", lines[0].ServiceName)
	require.Equal(t, 1, lines[0].Features)
	require.Equal(t, "800", lines[0].Subtotal.String())
	require.Equal(t, "Web Application", lines[1].ServiceName)
	require.Equal(t, 2, lines[1].Features)
	require.Equal(t, "1700", lines[1].Subtotal.String())

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal)
	}
	require.True(t, sum.Equal(Total(sel)))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"5", "$5"},
		{"1700", "$1,700"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"999.999", "$1,000"},
		{"-42.1", "-$42.10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}
