package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateStringNames(t *testing.T) {
	cases := map[State]string{
		StateUninit:           "UNINIT",
		StateLaunchingBrowser: "LAUNCHING_BROWSER",
		StateLoadingPage:      "LOADING_PAGE",
		StateWaitingReady:     "WAITING_READY",
		StateReady:            "READY",
		StateCleaning:         "CLEANING",
		StateDisposed:         "DISPOSED",
		StateFailed:           "FAILED",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}

func TestNewDriverStartsUninit(t *testing.T) {
	d := New(nil)
	assert.Equal(t, StateUninit, d.State())
}

func TestRequireReadyRejectsBeforeReady(t *testing.T) {
	d := New(nil)
	err := d.requireReady()
	assert.Error(t, err)
}

func TestJSStringEscapesQuotesAndBackslashes(t *testing.T) {
	assert.Equal(t, `"a\"b"`, jsString(`a"b`))
	assert.Equal(t, `"a\\b"`, jsString(`a\b`))
}
