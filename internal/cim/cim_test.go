package cim

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hwsnap/internal/runner"
)

type biosRow struct {
	Manufacturer string
	ReleaseDate  Text
	Capacity     uint64
}

var biosRequest = Request{
	Class:  "Win32_BIOS",
	Fields: []string{"Manufacturer", "ReleaseDate", "Capacity"},
}

func TestRequestWQL(t *testing.T) {
	assert.Equal(t, "SELECT Manufacturer, ReleaseDate, Capacity FROM Win32_BIOS", biosRequest.WQL())

	req := Request{Class: "Win32_NetworkAdapterConfiguration", Fields: []string{"MACAddress"}, Where: "IPEnabled = True"}
	assert.Equal(t, "SELECT MACAddress FROM Win32_NetworkAdapterConfiguration WHERE IPEnabled = True", req.WQL())
}

func TestRequestScriptForcesArray(t *testing.T) {
	req := Request{Class: "Win32_PnPEntity", Fields: []string{"Name", "PNPDeviceID"}, Where: "PNPDeviceID LIKE 'USB%'"}
	assert.Equal(t,
		"ConvertTo-Json -Compress -Depth 3 -InputObject @(Get-CimInstance -ClassName Win32_PnPEntity -Filter 'PNPDeviceID LIKE ''USB%''' | Select-Object Name,PNPDeviceID)",
		req.Script())
}

func TestDecode(t *testing.T) {
	rows, err := Decode[biosRow]([]byte(`[{"Manufacturer":"LENOVO","ReleaseDate":"20230515000000.000000+000","Capacity":17179869184}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "LENOVO", rows[0].Manufacturer)
	assert.Equal(t, Text("20230515000000.000000+000"), rows[0].ReleaseDate)
	assert.Equal(t, uint64(17179869184), rows[0].Capacity)
}

func TestDecodeBareObject(t *testing.T) {
	rows, err := Decode[biosRow]([]byte("\xef\xbb\xbf{\"Manufacturer\":\"Dell Inc.\"}\r\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dell Inc.", rows[0].Manufacturer)
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	rows, err := Decode[biosRow](nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, err = Decode[biosRow]([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = Decode[biosRow]([]byte("Get-CimInstance : Access denied"))
	require.Error(t, err)

	_, err = Decode[biosRow]([]byte(`[{"Manufacturer":`))
	require.Error(t, err)
}

func TestTextAcceptsDateObject(t *testing.T) {
	rows, err := Decode[biosRow]([]byte(`[{"ReleaseDate":{"value":"/Date(1684108800000)/","DateTime":"Monday, May 15, 2023"}},{"ReleaseDate":null},{"ReleaseDate":42}]`))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "/Date(1684108800000)/", rows[0].ReleaseDate.String())
	assert.Equal(t, "", rows[1].ReleaseDate.String())
	assert.Equal(t, "42", rows[2].ReleaseDate.String())
}

func TestQueryPrefersNative(t *testing.T) {
	ran := false
	c := &Client{
		native: func(query string, dst any) error {
			assert.Equal(t, biosRequest.WQL(), query)
			*(dst.(*[]biosRow)) = []biosRow{{Manufacturer: "native"}}
			return nil
		},
		run: runner.Func(func(context.Context, string, ...string) ([]byte, error) {
			ran = true
			return nil, nil
		}),
		log: zerolog.Nop(),
	}
	rows := Query[biosRow](context.Background(), c, biosRequest)
	require.Len(t, rows, 1)
	assert.Equal(t, "native", rows[0].Manufacturer)
	assert.False(t, ran)
}

func TestQueryFallsBackToPowerShell(t *testing.T) {
	var gotArgs []string
	c := &Client{
		native: func(string, any) error { return errors.New("COM init failed") },
		run: runner.Func(func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = append([]string{name}, args...)
			return []byte(`{"Manufacturer":"shell"}`), nil
		}),
		log: zerolog.Nop(),
	}
	rows := Query[biosRow](context.Background(), c, biosRequest)
	require.Len(t, rows, 1)
	assert.Equal(t, "shell", rows[0].Manufacturer)
	assert.Equal(t, []string{"powershell", "-NoProfile", "-NonInteractive", "-Command", biosRequest.Script()}, gotArgs)
}

func TestQueryFailuresYieldEmpty(t *testing.T) {
	failing := &Client{
		run: runner.Func(func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		}),
		log: zerolog.Nop(),
	}
	rows := Query[biosRow](context.Background(), failing, biosRequest)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	garbage := &Client{
		run: runner.Func(func(context.Context, string, ...string) ([]byte, error) {
			return []byte("<html>"), nil
		}),
		log: zerolog.Nop(),
	}
	assert.Empty(t, Query[biosRow](context.Background(), garbage, biosRequest))
	assert.Empty(t, Query[biosRow](context.Background(), nil, biosRequest))
}
