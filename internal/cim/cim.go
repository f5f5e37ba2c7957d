// Package cim queries the Windows management interface. Rows come from the
// native WMI binding when it is available and from a PowerShell
// Get-CimInstance subprocess otherwise. Failures of either kind yield no rows.
package cim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/hwsnap/internal/runner"
)

// Request selects Fields of Class, optionally filtered by a WQL condition.
// Fields must match the exported field names of the row type.
type Request struct {
	Class  string
	Fields []string
	Where  string
}

// WQL renders the request for the native binding.
func (r Request) WQL() string {
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(r.Fields, ", "), r.Class)
	if r.Where != "" {
		q += " WHERE " + r.Where
	}
	return q
}

// Script renders the request as a PowerShell command. -InputObject @(...)
// keeps a one-row result encoded as an array.
func (r Request) Script() string {
	var b strings.Builder
	b.WriteString("ConvertTo-Json -Compress -Depth 3 -InputObject @(Get-CimInstance -ClassName ")
	b.WriteString(r.Class)
	if r.Where != "" {
		b.WriteString(" -Filter '")
		b.WriteString(strings.ReplaceAll(r.Where, "'", "''"))
		b.WriteString("'")
	}
	b.WriteString(" | Select-Object ")
	b.WriteString(strings.Join(r.Fields, ","))
	b.WriteString(")")
	return b.String()
}

// Client holds the two query strategies.
type Client struct {
	native func(query string, dst any) error
	run    runner.Runner
	log    zerolog.Logger
}

// New returns a client that prefers the native binding on Windows and
// always falls back to PowerShell through run.
func New(run runner.Runner, log zerolog.Logger) *Client {
	return &Client{native: nativeQuery, run: run, log: log}
}

// Query returns the rows of req decoded into T, or an empty slice.
func Query[T any](ctx context.Context, c *Client, req Request) []T {
	if c == nil {
		return []T{}
	}
	if c.native != nil {
		var rows []T
		err := c.native(req.WQL(), &rows)
		if err == nil {
			if rows == nil {
				rows = []T{}
			}
			return rows
		}
		c.log.Debug().Err(err).Str("class", req.Class).Msg("native query failed, falling back to powershell")
	}
	if c.run == nil {
		return []T{}
	}

	out, err := c.run.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", req.Script())
	if err != nil {
		c.log.Debug().Err(err).Str("class", req.Class).Msg("powershell query failed")
		return []T{}
	}
	rows, err := Decode[T](out)
	if err != nil {
		c.log.Debug().Err(err).Str("class", req.Class).Msg("undecodable powershell output")
		return []T{}
	}
	return rows
}

var errNotJSON = errors.New("output is not a JSON array or object")

// Decode parses ConvertTo-Json output. A bare object is treated as a single
// row and empty output as no rows.
func Decode[T any](data []byte) ([]T, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}
	switch data[0] {
	case '[':
		var rows []T
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []T{}
		}
		return rows, nil
	case '{':
		var row T
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, err
		}
		return []T{row}, nil
	}
	return nil, errNotJSON
}
