package scoring

import (
	"testing"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

func TestGroupFor(t *testing.T) {
	catalog := model.DefaultCatalog()

	tests := []struct {
		name    string
		appName string
		answers []string
		want    string
	}{
		{
			"name hit dominates",
			"SCADA Monitor",
			nil,
			"Grid Operations / Engineering",
		},
		{
			"answers alone",
			"FieldTool",
			[]string{"Tracks work order completion and asset inspection schedules", "Supports repair crews"},
			"Maintenance & Asset Mgmt",
		},
		{
			"no signal",
			"Thing",
			[]string{"It does things"},
			"Uncategorized",
		},
		{
			"empty input",
			"",
			nil,
			"Uncategorized",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GroupFor(catalog, tc.appName, tc.answers); got != tc.want {
				t.Errorf("GroupFor(%q) = %q, want %q", tc.appName, got, tc.want)
			}
		})
	}
}

func TestChainStageFor(t *testing.T) {
	catalog := model.DefaultCatalog()

	tests := []struct {
		name    string
		appName string
		answers []string
		want    string
	}{
		{
			"customer facing",
			"BillPay Portal",
			[]string{"Handles customer billing and payment processing"},
			"Customer Solutions",
		},
		{
			"generation",
			"WindFarm Manager",
			[]string{"Monitors turbine output at onshore and offshore wind plants"},
			"Generation (Renewables)",
		},
		{
			"no signal falls through",
			"Thing",
			[]string{"Does assorted things"},
			"Cross-Cutting",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChainStageFor(catalog, tc.appName, tc.answers); got != tc.want {
				t.Errorf("ChainStageFor(%q) = %q, want %q", tc.appName, got, tc.want)
			}
		})
	}
}

func TestCategorizeNameBonus(t *testing.T) {
	cats := []model.KeywordCategory{
		{Name: "A", Keywords: []string{"alpha"}},
		{Name: "B", Keywords: []string{"beta"}},
	}
	c := NewCategorizer(cats, "None")

	// Two body hits for beta vs one name hit for alpha: the name hit
	// carries a bonus and wins
	got := c.Categorize("alpha service", []string{"beta beta"})
	if got != "A" {
		t.Errorf("name-bonus winner = %q, want A", got)
	}

	// Equal counts with no name involvement is a tie
	if got := c.Categorize("service", []string{"alpha beta"}); got != "None" {
		t.Errorf("tie = %q, want None", got)
	}
}
