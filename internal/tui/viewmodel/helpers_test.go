package viewmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppState_String(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		state AppState
	}{
		{name: "loading", state: StateLoading, want: "Loading"},
		{name: "ready", state: StateReady, want: "Ready"},
		{name: "reviewing", state: StateReviewing, want: "Reviewing"},
		{name: "error", state: StateError, want: "Error"},
		{name: "unknown", state: AppState(42), want: "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestAppState_JSON(t *testing.T) {
	data, err := json.Marshal(DashboardView{State: StateReviewing})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"Reviewing"`)
}

func TestAppState_RoundTrip(t *testing.T) {
	for _, state := range []AppState{StateLoading, StateReady, StateReviewing, StateError} {
		t.Run(state.String(), func(t *testing.T) {
			data, err := json.Marshal(DashboardView{State: state, AccountID: "acct-1001"})
			require.NoError(t, err)

			var decoded DashboardView
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, state, decoded.State)
			assert.Equal(t, "acct-1001", decoded.AccountID)
		})
	}
}

func TestAppState_UnmarshalUnknown(t *testing.T) {
	var decoded DashboardView
	err := json.Unmarshal([]byte(`{"state":"Sleeping"}`), &decoded)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestDashboardView_Helpers(t *testing.T) {
	v := DashboardView{
		Tabs: []TabView{
			{Pivot: "salesCompleted", Label: "Sales Completed"},
			{Pivot: "soldVehicles", Label: "Sold Vehicles", Count: 2, Active: true},
		},
		Items: []ItemView{
			{Key: "1", IsSelected: true},
			{Key: "2"},
		},
		Filter: "all",
	}

	tab, ok := v.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, "soldVehicles", tab.Pivot)
	assert.False(t, v.IsEmpty())
	assert.False(t, v.HasFilter())
	assert.Equal(t, []ItemView{{Key: "1", IsSelected: true}}, v.SelectedItems())

	v.Search = "shelby"
	assert.True(t, v.HasFilter())
	v.Search = ""
	v.Filter = "vehicle"
	assert.True(t, v.HasFilter())

	_, ok = DashboardView{}.ActiveTab()
	assert.False(t, ok)
}

func TestSelected(t *testing.T) {
	opts := []OptionView{{Key: "fedex"}, {Key: "ups", Selected: true}}
	got, ok := Selected(opts)
	require.True(t, ok)
	assert.Equal(t, "ups", got.Key)

	_, ok = Selected(opts[:1])
	assert.False(t, ok)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		maxLen int
	}{
		{name: "short", input: "Bel Air", maxLen: 10, want: "Bel Air"},
		{name: "exact", input: "Bel Air", maxLen: 7, want: "Bel Air"},
		{name: "ellipsis", input: "1967 Shelby GT500 Fastback", maxLen: 10, want: "1967 Sh..."},
		{name: "tiny", input: "Corvette", maxLen: 3, want: "Cor"},
		{name: "multibyte", input: "Citroën DS 21", maxLen: 8, want: "Citro..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.input, tt.maxLen))
		})
	}
}

func TestSanitizeForDisplay(t *testing.T) {
	assert.Equal(t, "Gulf Oil sign", SanitizeForDisplay("Gulf\x00Oil\n  sign"))
	assert.Equal(t, "", SanitizeForDisplay("   "))
}

func TestSmallHelpers(t *testing.T) {
	assert.Equal(t, "[x]", Checkbox(true))
	assert.Equal(t, "[ ]", Checkbox(false))
	assert.Equal(t, "-", ValueOrDash("  "))
	assert.Equal(t, "VIN123", ValueOrDash("VIN123"))
}
