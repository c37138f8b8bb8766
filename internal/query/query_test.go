package query

import "testing"

func TestExpandTickers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AAPL", "(AAPL OR Apple)"},
		{"AAPL, MSFT", "(AAPL OR Apple) OR (MSFT OR Microsoft)"},
		{"aapl OR msft", "(AAPL OR Apple) OR (MSFT OR Microsoft)"},
		{"AAPL, AAPL", "(AAPL OR Apple)"},
		{"AAPL, aapl", "(AAPL OR Apple)"},
		{"crude oil, OPEC", "crude oil OR OPEC"},
		{"TSLA, crude oil", "(TSLA OR Tesla) OR crude oil"},
		{"", ""},
		{" , ", " , "},
	}
	for _, tt := range tests {
		if got := ExpandTickers(tt.input); got != tt.want {
			t.Errorf("ExpandTickers(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExpandTickersPreservesOrder(t *testing.T) {
	got := ExpandTickers("NVDA, AAPL, NVDA")
	want := "(NVDA OR Nvidia) OR (AAPL OR Apple)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBroaden(t *testing.T) {
	got := Broaden("AAPL")
	want := "AAPL OR (earnings OR guidance OR upgrade OR downgrade OR outlook)" +
		" OR (stock OR shares OR equities)" +
		" OR (market OR index OR rally OR selloff)" +
		" OR (Federal Reserve OR interest rates OR CPI OR inflation)"
	if got != want {
		t.Errorf("Broaden(AAPL) = %q, want %q", got, want)
	}

	if got := Broaden(""); got != "" {
		t.Errorf("Broaden(\"\") = %q, want empty", got)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		provider string
		broad    bool
		want     string
	}{
		{"rss ignores broad", "AAPL, MSFT", "rss", true, "AAPL, MSFT"},
		{"rss plain", "AAPL, MSFT", "rss", false, "AAPL, MSFT"},
		{"newsapi without broad", "AAPL", "newsapi", false, "AAPL"},
		{"newsapi broad", "AAPL", "newsapi", true, Broaden("AAPL")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.base, tt.provider, tt.broad); got != tt.want {
				t.Errorf("Build(%q, %q, %v) = %q, want %q", tt.base, tt.provider, tt.broad, got, tt.want)
			}
		})
	}
}

func TestBroadenNotIdempotent(t *testing.T) {
	once := Broaden("AAPL")
	twice := Broaden(once)
	if once == twice {
		t.Error("expected re-broadening to append the suffix again")
	}
}

func TestPresetNames(t *testing.T) {
	for _, name := range PresetNames() {
		if Presets[name] == "" {
			t.Errorf("preset %q has no query", name)
		}
	}
	if len(PresetNames()) != len(Presets) {
		t.Errorf("PresetNames covers %d of %d presets", len(PresetNames()), len(Presets))
	}
}
