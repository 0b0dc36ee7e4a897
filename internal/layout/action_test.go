package layout

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
		suggest []string
	}{
		{in: "On", want: ActionOn},
		{in: "Blink", want: ActionBlink},
		{in: "", wantErr: true},
		{in: "on", wantErr: true, suggest: []string{"On"}},
		{in: "BLINK", wantErr: true, suggest: []string{"Blink"}},
		{in: "Off", wantErr: true},
		{in: "Strobe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAction))

			var invalid *InvalidActionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.in, invalid.Value)
			assert.Equal(t, tt.suggest, invalid.Suggestions)
		})
	}
}

func TestInvalidActionError_Message(t *testing.T) {
	_, err := ParseAction("blink")
	assert.EqualError(t, err, `invalid action "blink": must be one of On, Blink (did you mean "Blink"?)`)

	_, err = ParseAction("")
	assert.EqualError(t, err, `invalid action "": must be one of On, Blink`)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "On", ActionOn.String())
	assert.Equal(t, "Blink", ActionBlink.String())
	assert.Equal(t, "Action(0)", Action(0).String())
	assert.Equal(t, "Action(7)", Action(7).String())
	assert.Equal(t, []string{"On", "Blink"}, ActionNames())
}

func TestAction_Text(t *testing.T) {
	data, err := json.Marshal(struct{ A Action }{A: ActionBlink})
	require.NoError(t, err)
	assert.JSONEq(t, `{"A":"Blink"}`, string(data))

	var out struct{ A Action }
	require.NoError(t, json.Unmarshal([]byte(`{"A":"On"}`), &out))
	assert.Equal(t, ActionOn, out.A)

	err = json.Unmarshal([]byte(`{"A":"Dim"}`), &out)
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = Action(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidAction)
}
