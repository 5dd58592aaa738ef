package variable

import (
	"slices"
	"testing"

	"github.com/matzehuels/tlfs/pkg/errors"
)

func TestNewQuantityDefaults(t *testing.T) {
	q, err := NewQuantity("Age")
	if err != nil {
		t.Fatalf("NewQuantity: %v", err)
	}
	if q.Kind() != KindQuantity {
		t.Errorf("Kind() = %v, want %v", q.Kind(), KindQuantity)
	}
	if !slices.Equal(q.Display(), DefaultDisplay) {
		t.Errorf("Display() = %v, want %v", q.Display(), DefaultDisplay)
	}
	if q.CellTemplate() != DefaultQuantityTemplate {
		t.Errorf("CellTemplate() = %q, want %q", q.CellTemplate(), DefaultQuantityTemplate)
	}
	if q.Label() != "Age" {
		t.Errorf("Label() = %q, want %q", q.Label(), "Age")
	}
}

func TestNewQuantityOptions(t *testing.T) {
	q, err := NewQuantity(" Age ",
		WithUnit("years"),
		WithDisplay("median", "25pct", "75pct"),
		WithQuantityTemplate("xx.x"))
	if err != nil {
		t.Fatalf("NewQuantity: %v", err)
	}
	if q.Description() != "Age" {
		t.Errorf("Description() = %q, want %q", q.Description(), "Age")
	}
	if q.Label() != "Age (years)" {
		t.Errorf("Label() = %q, want %q", q.Label(), "Age (years)")
	}
	if want := []string{"median", "25pct", "75pct"}; !slices.Equal(q.Display(), want) {
		t.Errorf("Display() = %v, want %v", q.Display(), want)
	}
	if q.CellTemplate() != "xx.x" {
		t.Errorf("CellTemplate() = %q, want %q", q.CellTemplate(), "xx.x")
	}
}

func TestQuantitySingleDisplay(t *testing.T) {
	q, err := NewQuantity("Age", WithDisplay("median (iqr)"), WithQuantityTemplate("xx (xx - xx)"))
	if err != nil {
		t.Fatalf("NewQuantity: %v", err)
	}
	if got := q.Display(); len(got) != 1 || got[0] != "median (iqr)" {
		t.Errorf("Display() = %v, want [median (iqr)]", got)
	}
}

func TestQuantityDisplayIsCopied(t *testing.T) {
	q, _ := NewQuantity("Age", WithDisplay("mean", "sd"))
	d := q.Display()
	d[0] = "changed"
	if q.Display()[0] != "mean" {
		t.Error("mutating Display() result changed the descriptor")
	}
}

func TestNewQuantityErrors(t *testing.T) {
	tests := []struct {
		name string
		desc string
		opts []QuantityOption
	}{
		{"empty description", "  ", nil},
		{"unknown statistic", "Age", []QuantityOption{WithDisplay("mode")}},
		{"unknown word in composite", "Age", []QuantityOption{WithDisplay("median (range)")}},
		{"punctuation only", "Age", []QuantityOption{WithDisplay("( - )")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuantity(tt.desc, tt.opts...)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("NewQuantity() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateStatistic(t *testing.T) {
	tests := []struct {
		entry   string
		wantErr bool
	}{
		{"median", false},
		{"25pct", false},
		{"MEAN (SD)", false},
		{"25pct - 75pct", false},
		{"iqr", false},
		{"", true},
		{"variance", true},
	}
	for _, tt := range tests {
		if err := ValidateStatistic(tt.entry); (err != nil) != tt.wantErr {
			t.Errorf("ValidateStatistic(%q) error = %v, wantErr %v", tt.entry, err, tt.wantErr)
		}
	}
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("Sex", []string{"M", "F"})
	if err != nil {
		t.Fatalf("NewCategory: %v", err)
	}
	if c.Kind() != KindCategory {
		t.Errorf("Kind() = %v, want %v", c.Kind(), KindCategory)
	}
	if !slices.Equal(c.ActualGroups(), []string{"M", "F"}) {
		t.Errorf("ActualGroups() = %v, want [M F]", c.ActualGroups())
	}
	if c.DisplayMode() != DefaultDisplayMode {
		t.Errorf("DisplayMode() = %q, want %q", c.DisplayMode(), DefaultDisplayMode)
	}
	if c.CellTemplate() != DefaultCategoryTemplate {
		t.Errorf("CellTemplate() = %q, want %q", c.CellTemplate(), DefaultCategoryTemplate)
	}
}

func TestCategoryActualGroups(t *testing.T) {
	tests := []struct {
		name string
		opts []CategoryOption
		want []string
	}{
		{"plain", nil, []string{"EXP", "CTRL", "PBO"}},
		{"missing", []CategoryOption{WithMissing()}, []string{"EXP", "CTRL", "PBO", "NA"}},
		{"total", []CategoryOption{WithTotal()}, []string{"EXP", "CTRL", "PBO", "Tot"}},
		{"both", []CategoryOption{WithTotal(), WithMissing()}, []string{"EXP", "CTRL", "PBO", "NA", "Tot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCategory("Treatment", []string{"EXP", "CTRL", "PBO"}, tt.opts...)
			if err != nil {
				t.Fatalf("NewCategory: %v", err)
			}
			if got := c.ActualGroups(); !slices.Equal(got, tt.want) {
				t.Errorf("ActualGroups() = %v, want %v", got, tt.want)
			}
			if got := c.Groups(); len(got) != 3 {
				t.Errorf("len(Groups()) = %d, want 3", len(got))
			}
		})
	}
}

func TestCategoryActualGroupsCount(t *testing.T) {
	for g := 2; g <= 6; g++ {
		groups := make([]string, g)
		for i := range groups {
			groups[i] = string(rune('A' + i))
		}
		c, err := NewCategory("Arm", groups, WithMissing(), WithTotal())
		if err != nil {
			t.Fatalf("NewCategory(%d groups): %v", g, err)
		}
		if got := len(c.ActualGroups()); got != g+2 {
			t.Errorf("len(ActualGroups()) with %d groups = %d, want %d", g, got, g+2)
		}
	}
}

func TestNewCategoryErrors(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		opts   []CategoryOption
	}{
		{"no groups", nil, nil},
		{"one group", []string{"All"}, nil},
		{"blank groups dropped", []string{"M", " ", ""}, nil},
		{"duplicate group", []string{"M", "M"}, nil},
		{"clashes with missing", []string{"M", "NA"}, []CategoryOption{WithMissing()}},
		{"clashes with total", []string{"Tot", "M"}, []CategoryOption{WithTotal()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCategory("Sex", tt.groups, tt.opts...)
			if !errors.Is(err, errors.ErrCodeInvalidCategory) {
				t.Errorf("NewCategory() error = %v, want %s", err, errors.ErrCodeInvalidCategory)
			}
		})
	}
}

func TestCategoryNAWithoutMissingIsOrdinary(t *testing.T) {
	c, err := NewCategory("Answer", []string{"Yes", "No", "NA"})
	if err != nil {
		t.Fatalf("NewCategory: %v", err)
	}
	if c.IsPseudoGroup("NA") {
		t.Error("IsPseudoGroup(NA) = true for a category without WithMissing")
	}
}

func TestIsPseudoGroup(t *testing.T) {
	c, _ := NewCategory("Sex", []string{"M", "F"}, WithMissing(), WithTotal())
	for label, want := range map[string]bool{"M": false, "F": false, "NA": true, "Tot": true} {
		if got := c.IsPseudoGroup(label); got != want {
			t.Errorf("IsPseudoGroup(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestNewItemset(t *testing.T) {
	s, err := NewItemset("Adverse events", []string{"Headache", "Nausea"}, []string{"Grade", "Onset"}, "")
	if err != nil {
		t.Fatalf("NewItemset: %v", err)
	}
	if s.Kind() != KindItemset {
		t.Errorf("Kind() = %v, want %v", s.Kind(), KindItemset)
	}
	if s.CellTemplate() != DefaultItemsetTemplate {
		t.Errorf("CellTemplate() = %q, want %q", s.CellTemplate(), DefaultItemsetTemplate)
	}
	if len(s.Items()) != 2 || len(s.Contents()) != 2 {
		t.Errorf("Items/Contents = %v/%v", s.Items(), s.Contents())
	}
}

func TestNewItemsetErrors(t *testing.T) {
	if _, err := NewItemset("AE", nil, []string{"Grade"}, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no items: error = %v", err)
	}
	if _, err := NewItemset("AE", []string{"Headache"}, []string{" "}, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no contents: error = %v", err)
	}
	if _, err := NewItemset("", []string{"Headache"}, []string{"Grade"}, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no description: error = %v", err)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindQuantity: "quantity",
		KindCategory: "category",
		KindItemset:  "itemset",
		Kind(0):      "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
