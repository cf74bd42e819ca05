package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/app"
	"github.com/iov-one/paychan/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// paychand runs a command and returns its output.
func paychand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	err := run(strings.NewReader(stdin), &out, &stderr, args)
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := paychand(t, stdin, args...)
	require.NoError(t, err, "paychand %s", strings.Join(args, " "))
	return out
}

func parseReceipt(t *testing.T, out string) (string, app.Receipt) {
	t.Helper()
	chunks := strings.SplitN(out, "\n", 2)
	require.Len(t, chunks, 2, "unexpected output: %q", out)
	var r app.Receipt
	require.NoError(t, json.Unmarshal([]byte(chunks[1]), &r))
	return chunks[0], r
}

func tempHome(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "paychand-cli")
	require.NoError(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

func TestChannelLifecycle(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()
	h := "--home=" + home

	aliceKey := filepath.Join(home, "alice.hex")
	bobKey := filepath.Join(home, "bob.hex")
	alice := strings.TrimSpace(mustRun(t, "", h, "keygen", "--key", aliceKey))
	bob := strings.TrimSpace(mustRun(t, "", h, "keygen", "--key", bobKey))
	assert.Equal(t, alice, strings.TrimSpace(mustRun(t, "", h, "address", "--key", aliceKey)))

	_, err := paychand(t, "", h, "open", "--payer", alice, "--payee", bob, "--deposit", "100", "--timeout", "+1h")
	require.Error(t, err, "state must be initialized first")

	accounts, err := json.Marshal([]cash.GenesisAccount{
		{Address: paychan.MustParseAddress(alice), Balance: "1000"},
	})
	require.NoError(t, err)
	genesis, err := json.Marshal(app.Genesis{
		ChainID:  "cli-test-chain",
		AppState: paychan.Options{"cash": accounts},
	})
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "genesis.json"), genesis, 0600))

	assert.Equal(t, "initialized chain cli-test-chain\n", mustRun(t, "", h, "init"))
	_, err = paychand(t, "", h, "init")
	require.Error(t, err, "genesis can be loaded once")

	status, r := parseReceipt(t, mustRun(t, "", h, "open",
		"--payer", alice, "--payee", bob, "--deposit", "100", "--timeout", "+1h", "--memo", "coffee"))
	assert.Equal(t, "SUCCESS", status)
	id := paychan.Address(r.Data).String()

	assert.Equal(t, "100\n", mustRun(t, "", h, "balance", "--address", id))
	assert.Equal(t, "900\n", mustRun(t, "", h, "balance", "--address", alice))

	claim := mustRun(t, "", h, "sign-claim", "--key", bobKey, "--channel", id, "--total", "40")

	status, r = parseReceipt(t, mustRun(t, claim, h, "close", "--caller", alice))
	assert.Equal(t, "SUCCESS", status)
	assert.Equal(t, uint32(0), r.Code)

	assert.Equal(t, "40\n", mustRun(t, "", h, "balance", "--address", bob))
	assert.Equal(t, "960\n", mustRun(t, "", h, "balance", "--address", alice))

	var view channelView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "", h, "channel", "--channel", id)), &view))
	assert.Equal(t, "CLOSED", view.Status)
	assert.Equal(t, "40", view.Settled)
	assert.Equal(t, "60", view.Refunded)
	assert.Equal(t, "0", view.Balance)
	assert.Equal(t, "coffee", view.Memo)

	var listed []channelView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "", h, "channels", "--payee", bob)), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, id, listed[0].ID.String())
	_, err = paychand(t, "", h, "channels")
	require.Error(t, err)

	// The claim can be stored in a file as well. A settled channel cannot
	// be closed again.
	claimFile := filepath.Join(home, "claim.json")
	require.NoError(t, ioutil.WriteFile(claimFile, []byte(claim), 0600))
	out, err := paychand(t, "", h, "close", "--claim", claimFile)
	require.Error(t, err)
	status, r = parseReceipt(t, out)
	assert.Equal(t, "FAILURE", status)
	assert.Equal(t, uint32(1033), r.Code)

	_, err = paychand(t, "", h, "expire", "--channel", id)
	require.Error(t, err)
}

func TestKeygenDoesNotOverwrite(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, "", "--home", home, "keygen")
	first, err := ioutil.ReadFile(filepath.Join(home, keyFileName))
	require.NoError(t, err)

	_, err = paychand(t, "", "--home", home, "keygen")
	require.Error(t, err)

	second, err := ioutil.ReadFile(filepath.Join(home, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	bech := strings.TrimSpace(mustRun(t, "", "--home", home, "address", "--bech32"))
	assert.True(t, strings.HasPrefix(bech, paychan.AddressHRP+"1"), bech)
}

func TestArguments(t *testing.T) {
	cases := map[string][]string{
		"no command":            {},
		"unknown command":       {"transfer"},
		"missing required flag": {"balance"},
		"invalid address":       {"balance", "--address", "0x1234"},
		"invalid log level":     {"--log-level", "verbose", "version"},
	}
	for testName, args := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := paychand(t, "", args...)
			assert.Error(t, err)
		})
	}

	out := mustRun(t, "", "version")
	assert.Equal(t, paychan.Version()+"\n", out)
}

func TestParseTimeout(t *testing.T) {
	now := time.Unix(1546300800, 0)

	cases := map[string]struct {
		value   string
		want    paychan.UnixTime
		wantErr bool
	}{
		"unix timestamp": {
			value: "1546300900",
			want:  1546300900,
		},
		"relative duration": {
			value: "+90s",
			want:  1546300890,
		},
		"rfc3339": {
			value: "2019-01-01T01:00:00Z",
			want:  1546304400,
		},
		"negative timestamp": {
			value:   "-5",
			wantErr: true,
		},
		"garbage": {
			value:   "tomorrow",
			wantErr: true,
		},
		"invalid duration": {
			value:   "+ages",
			wantErr: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := parseTimeout(tc.value, now)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
