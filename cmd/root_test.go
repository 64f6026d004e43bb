package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/resy-client/internal/config"
	"github.com/example/resy-client/internal/domain/reservation"
	"github.com/example/resy-client/internal/domain/user"
	"github.com/example/resy-client/internal/facade"
	"github.com/example/resy-client/internal/resy"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"RESY_API_KEY", "RESY_AUTH_TOKEN", "RESY_BASE_URL", "RESY_LOCATION", "RESY_LATITUDE",
		"RESY_LONGITUDE", "RESY_TIMEOUT", "RESY_DATABASE_URL", "RESY_CRED_ENC_KEY",
		"RESY_LOG_LEVEL", "RESY_LOG_PRETTY", "RESY_DEBUG",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("RESY_LOG_LEVEL", "disabled")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithStderr(t, args...)
	return out, err
}

func runWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func fakeResy(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Setenv("RESY_BASE_URL", srv.URL)
	t.Setenv("RESY_API_KEY", "key")
	t.Setenv("RESY_AUTH_TOKEN", "tok")
}

func TestVersion(t *testing.T) {
	isolateEnv(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "resyclient dev (commit=none, built=unknown)\n", out)
}

func TestKeys(t *testing.T) {
	isolateEnv(t)
	out, err := run(t, "keys")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "export RESY_CRED_ENC_KEY="))
}

func TestSlug(t *testing.T) {
	isolateEnv(t)
	out, err := run(t, "slug", "https://resy.com/cities/ny/venues/lilia?date=2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "lilia\n", out)

	_, err = run(t, "slug", "https://resy.com/cities/ny")
	assert.ErrorIs(t, err, facade.ErrNoVenueSlug)
}

func TestMissingCredentials(t *testing.T) {
	isolateEnv(t)
	_, err := run(t, "user")
	assert.ErrorIs(t, err, errNoCredentials)

	_, err = run(t, "user", "--api-key", "k")
	assert.ErrorIs(t, err, errNoCredentials)
}

func TestFlagsOverrideEnvCredentials(t *testing.T) {
	isolateEnv(t)
	var gotAuth, gotToken string
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotToken = r.Header.Get("X-Resy-Auth-Token")
		_, _ = io.WriteString(w, `{"id":1}`)
	})

	out, err := run(t, "user", "--api-key", "flag-key", "--auth-token", "flag-tok")
	require.NoError(t, err)
	assert.Equal(t, `ResyAPI api_key="flag-key"`, gotAuth)
	assert.Equal(t, "flag-tok", gotToken)
	assert.JSONEq(t, `{"id":1}`, out)
}

func TestPing(t *testing.T) {
	isolateEnv(t)
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/user", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":1,"first_name":"Ada","last_name":"Lovelace"}`)
	})
	out, err := run(t, "ping")
	require.NoError(t, err)
	assert.Equal(t, "resy: ok (Ada Lovelace)\n", out)
}

func TestVenueAcceptsURL(t *testing.T) {
	isolateEnv(t)
	var slug string
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		slug = r.URL.Query().Get("url_slug")
		_, _ = io.WriteString(w, `{"id":{"resy":5}}`)
	})
	_, err := run(t, "venue", "https://resy.com/cities/ny/venues/lilia?x=1")
	require.NoError(t, err)
	assert.Equal(t, "lilia", slug)

	_, err = run(t, "venue", "carbone")
	require.NoError(t, err)
	assert.Equal(t, "carbone", slug)
}

const findBody = `{"results":{"venues":[{"slots":[
	{"date":{"start":"2024-01-01 19:00:00","end":"2024-01-01 21:00:00"},"config":{"type":"Dining Room","token":"rgs://a"}},
	{"date":{"start":"2024-01-01 21:30:00","end":"2024-01-01 23:00:00"},"config":{"type":"Bar","token":"rgs://b"}}
]}]}}`

func TestFind_TableAndFilters(t *testing.T) {
	isolateEnv(t)
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/4/find", r.URL.Path)
		assert.Equal(t, "123", r.URL.Query().Get("venue_id"))
		assert.Equal(t, "4", r.URL.Query().Get("party_size"))
		_, _ = io.WriteString(w, findBody)
	})

	out, err := run(t, "find", "--venue-id", "123", "--day", "2024-01-01", "--party-size", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "START")
	assert.Contains(t, out, "rgs://a")
	assert.Contains(t, out, "rgs://b")

	out, err = run(t, "find", "--venue-id", "123", "--day", "2024-01-01", "--party-size", "4", "--types", "bar")
	require.NoError(t, err)
	assert.NotContains(t, out, "rgs://a")
	assert.Contains(t, out, "rgs://b")

	out, err = run(t, "find", "--venue-id", "123", "--day", "2024-01-01", "--party-size", "4", "--times", "18:00")
	require.NoError(t, err)
	assert.Equal(t, "no slots\n", out)

	out, err = run(t, "find", "--venue-id", "123", "--day", "2024-01-01", "--party-size", "4", "--raw")
	require.NoError(t, err)
	assert.JSONEq(t, findBody, out)
}

func TestFind_RequiresFlags(t *testing.T) {
	isolateEnv(t)
	_, err := run(t, "find", "--day", "2024-01-01")
	assert.Error(t, err)
}

func TestDetails_CommitFlag(t *testing.T) {
	isolateEnv(t)
	var body map[string]any
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/details", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"book_token":{"value":"bt"}}`)
	})

	_, err := run(t, "details", "--config-id", "rgs://a", "--day", "2024-01-01", "--party-size", "2", "--commit")
	require.NoError(t, err)
	assert.EqualValues(t, 1, body["commit"])
	assert.Equal(t, "rgs://a", body["config_id"])

	_, err = run(t, "details", "--config-id", "rgs://a", "--day", "2024-01-01")
	require.NoError(t, err)
	assert.EqualValues(t, 0, body["commit"])
}

func TestBook_SurfacesAPIError(t *testing.T) {
	isolateEnv(t)
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
		_, _ = io.WriteString(w, `{"message":"token expired"}`)
	})

	_, err := run(t, "book", "--book-token", "bt", "--payment-id", "9")
	var apiErr *resy.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusPreconditionFailed, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "412")
}

func TestCheck(t *testing.T) {
	isolateEnv(t)
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/venue":
			assert.Equal(t, "lilia", r.URL.Query().Get("url_slug"))
			_, _ = io.WriteString(w, `{"id":{"resy":418},"name":"Lilia"}`)
		case "/4/find":
			assert.Equal(t, "418", r.URL.Query().Get("venue_id"))
			_, _ = io.WriteString(w, findBody)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	out, err := run(t, "check", "https://resy.com/cities/ny/venues/lilia", "--day", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Lilia (venue 418) on 2024-01-01 for 2:")
	assert.Contains(t, out, "rgs://a")
}

func TestProfile_RequiresStore(t *testing.T) {
	isolateEnv(t)
	_, err := run(t, "profile", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESY_DATABASE_URL")

	_, err = run(t, "profile", "set", "home")
	assert.Error(t, err)

	_, err = run(t, "user", "--profile", "home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESY_DATABASE_URL")
}

func TestLoad_DebugRaisesLogLevel(t *testing.T) {
	t.Run("env only", func(t *testing.T) {
		isolateEnv(t)
		require.NoError(t, os.Unsetenv("RESY_LOG_LEVEL"))
		t.Setenv("RESY_DEBUG", "true")

		cfg, log, err := (&globalFlags{}).load()
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
	})

	t.Run("flag only", func(t *testing.T) {
		isolateEnv(t)
		require.NoError(t, os.Unsetenv("RESY_LOG_LEVEL"))

		cfg, _, err := (&globalFlags{debug: true}).load()
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("explicit level wins", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("RESY_DEBUG", "true")
		t.Setenv("RESY_LOG_LEVEL", "warn")

		cfg, _, err := (&globalFlags{}).load()
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)

		cfg, _, err = (&globalFlags{debug: true, logLevel: "error"}).load()
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("no debug keeps default", func(t *testing.T) {
		isolateEnv(t)
		require.NoError(t, os.Unsetenv("RESY_LOG_LEVEL"))

		cfg, _, err := (&globalFlags{}).load()
		require.NoError(t, err)
		assert.False(t, cfg.Debug)
		assert.Equal(t, "info", cfg.LogLevel)
	})
}

func TestPrintSlots_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSlots(&buf, []reservation.Slot{
		{Start: "2024-01-01 19:00:00", End: "2024-01-01 21:00:00", Type: "Dining Room", ConfigToken: "rgs://resy/834/1/2024-01-01/19:00:00/2/Dining Room"},
		{Start: "2024-01-01 21:30:00", End: "2024-01-01 23:00:00", Type: "Bar", ConfigToken: "rgs://b"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "START"))
	assert.Contains(t, lines[0], "CONFIG_ID")
	assert.Contains(t, lines[1], "rgs://resy/834/1/2024-01-01/19:00:00/2/Dining Room")
	assert.Contains(t, lines[2], "Bar")
	assert.NotContains(t, buf.String(), "|")
	assert.NotContains(t, buf.String(), "+")

	buf.Reset()
	require.NoError(t, printSlots(&buf, nil))
	assert.Equal(t, "no slots\n", buf.String())
}

func TestPrintProfiles_Table(t *testing.T) {
	var buf bytes.Buffer
	updated := time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)
	require.NoError(t, printProfiles(&buf, []user.Profile{{Name: "home", UpdatedAt: updated}}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "home")
	assert.Contains(t, lines[1], "2024-01-02 15:04")

	buf.Reset()
	require.NoError(t, printProfiles(&buf, nil))
	assert.Equal(t, "no profiles\n", buf.String())
}

func TestPing_ShowsDefaultPaymentMethod(t *testing.T) {
	isolateEnv(t)
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":1,"first_name":"Ada","payment_methods":[{"id":6},{"id":7,"is_default":true}]}`)
	})
	out, err := run(t, "ping")
	require.NoError(t, err)
	assert.Equal(t, "resy: ok (Ada, default payment id 7)\n", out)
}

func TestDetails_CommitPrintsSummary(t *testing.T) {
	isolateEnv(t)
	const body = `{"book_token":{"value":"bt-1","date_expires":"2024-01-01 19:05:00"},"user":{"payment_methods":[{"id":7,"is_default":true}]}}`
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})

	out, errOut, err := runWithStderr(t, "details", "--config-id", "rgs://a", "--day", "2024-01-01", "--commit")
	require.NoError(t, err)
	assert.JSONEq(t, body, out)
	assert.Equal(t, "book token expires 2024-01-01 19:05:00, default payment id 7\n", errOut)

	_, errOut, err = runWithStderr(t, "details", "--config-id", "rgs://a", "--day", "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestBook_ConfirmsReservation(t *testing.T) {
	isolateEnv(t)
	body := `{"resy_token":"rt","reservation_id":555}`
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})

	out, errOut, err := runWithStderr(t, "book", "--book-token", "bt", "--payment-id", "7")
	require.NoError(t, err)
	assert.JSONEq(t, body, out)
	assert.Equal(t, "booked reservation 555\n", errOut)

	body = `{"unexpected":true}`
	out, errOut, err = runWithStderr(t, "book", "--book-token", "bt", "--payment-id", "7")
	require.NoError(t, err, "a 2xx booking is not turned into a failure")
	assert.JSONEq(t, body, out)
	assert.Empty(t, errOut)
}

func TestCheck_Quiet(t *testing.T) {
	isolateEnv(t)
	find := findBody
	fakeResy(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/venue":
			_, _ = io.WriteString(w, `{"id":{"resy":418},"name":"Lilia"}`)
		case "/4/find":
			_, _ = io.WriteString(w, find)
		}
	})

	out, err := run(t, "check", "https://resy.com/cities/ny/venues/lilia", "--day", "2024-01-01", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "available\n", out)

	find = `{"results":{"venues":[]}}`
	out, err = run(t, "check", "https://resy.com/cities/ny/venues/lilia", "--day", "2024-01-01", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "unavailable\n", out)

	_, err = run(t, "check", "https://resy.com/cities/ny/venues/lilia", "--day", "2024-01-01", "--quiet", "--times", "19:00")
	assert.Error(t, err)
}

func TestProfileCredentials(t *testing.T) {
	env := config.Config{APIKey: "env-key", AuthToken: "env-tok"}

	creds, err := profileCredentials(&globalFlags{apiKey: "k", authToken: "t"}, env)
	require.NoError(t, err)
	assert.Equal(t, resy.Credentials{APIKey: "k", AuthToken: "t"}, creds)

	_, err = profileCredentials(&globalFlags{apiKey: "k"}, env)
	assert.Error(t, err)

	creds, err = profileCredentials(&globalFlags{}, env)
	require.NoError(t, err)
	assert.Equal(t, resy.Credentials{APIKey: "env-key", AuthToken: "env-tok"}, creds)

	_, err = profileCredentials(&globalFlags{}, config.Config{})
	assert.ErrorIs(t, err, errNoCredentials)
}
