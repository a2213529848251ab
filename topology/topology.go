// Package topology decodes network topology snapshots and lays them out in world space.
package topology

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CloudID is the dev_id of the record that "cloud" links attach to.
const CloudID = "cloud"

var (
	ErrEmptyTopology = errors.New("topology has no records")
	ErrDuplicateNode = errors.New("duplicate dev_id")
)

// Ident is an identifier that may be encoded as a JSON string or number.
type Ident string

func (i *Ident) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Ident(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier %s: %w", data, err)
	}
	*i = Ident(n.String())
	return nil
}

// Coord is a layout coordinate that may be encoded as a JSON number or numeric string.
// Empty strings and null decode as 0.
type Coord float64

func (c *Coord) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*c = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("coordinate %s: %w", data, err)
	}
	*c = Coord(v)
	return nil
}

// Link is one adjacency of a record. A link of Type "cloud" points at the cloud record,
// any other link points at the record whose dev_id equals DevID.
type Link struct {
	DevID Ident  `json:"dev_id"`
	Type  string `json:"type,omitempty"`
}

// Target returns the dev_id the link resolves to.
func (l Link) Target() Ident {
	if l.Type == CloudID {
		return CloudID
	}
	return l.DevID
}

// Record is one device of the topology.
type Record struct {
	ID    Ident  `json:"id"`
	DevID Ident  `json:"dev_id"`
	IP    string `json:"ip"`
	X     Coord  `json:"x"`
	Y     Coord  `json:"y"`
	Links []Link `json:"links"`
}

// Label returns the text drawn next to the record's node.
func (r Record) Label() string {
	if r.IP != "" {
		return r.IP
	}
	return CloudID
}

// Topology is a decoded snapshot.
type Topology struct {
	Records []Record
}

type envelope struct {
	Topolist []Record `json:"topolist"`
	Data     *struct {
		Topolist []Record `json:"topolist"`
	} `json:"data"`
}

// Decode reads a snapshot from r. The document is either a bare list of records or an
// object carrying the list under "topolist" or "data.topolist".
//
// Parameters:
//   - r: the JSON source
//
// Returns:
//   - *Topology: the decoded snapshot
//   - error: a decode error, ErrEmptyTopology or ErrDuplicateNode
func Decode(r io.Reader) (*Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology: %w", err)
	}
	return Parse(data)
}

// Parse decodes a snapshot held in memory. See Decode.
//
// Parameters:
//   - data: the JSON document
//
// Returns:
//   - *Topology: the decoded snapshot
//   - error: a decode error, ErrEmptyTopology or ErrDuplicateNode
func Parse(data []byte) (*Topology, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyTopology
	}

	var records []Record
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode topology list: %w", err)
		}
	} else {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to decode topology: %w", err)
		}
		records = env.Topolist
		if len(records) == 0 && env.Data != nil {
			records = env.Data.Topolist
		}
	}

	t := &Topology{Records: records}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load decodes the snapshot stored at path.
//
// Parameters:
//   - path: the JSON file
//
// Returns:
//   - *Topology: the decoded snapshot
//   - error: an open or decode error
func Load(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topology %s: %w", path, err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate reports ErrEmptyTopology for a snapshot without records and ErrDuplicateNode when
// two records share a non-empty dev_id.
//
// Returns:
//   - error: the first violation, or nil
func (t *Topology) Validate() error {
	if len(t.Records) == 0 {
		return ErrEmptyTopology
	}
	seen := make(map[Ident]int, len(t.Records))
	for i, r := range t.Records {
		if r.DevID == "" {
			continue
		}
		if j, ok := seen[r.DevID]; ok {
			return fmt.Errorf("%w %q at records %d and %d", ErrDuplicateNode, r.DevID, j, i)
		}
		seen[r.DevID] = i
	}
	return nil
}

// Index maps each non-empty dev_id to its record position.
//
// Returns:
//   - map[Ident]int: dev_id to record index
func (t *Topology) Index() map[Ident]int {
	idx := make(map[Ident]int, len(t.Records))
	for i, r := range t.Records {
		if r.DevID != "" {
			idx[r.DevID] = i
		}
	}
	return idx
}
