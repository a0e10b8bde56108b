package transition

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"arcparse/util/conf"
)

const (
	COLUMN_SEPARATOR  = ":"  // separates the address list from descriptors
	ADDRESS_SEPARATOR = ","  // joins addresses and values of a join feature
	FIELD_SEPARATOR   = "|"  // separates address, descriptor and value
	LINK_SEPARATOR    = ">"  // separates the links of a rendered address
	ABSENT_FEATURE    = "--absentFeature--"
	JOIN_DESCRIPTOR   = "join"
)

// Addressing functions that may wrap a structure address.
const (
	LINK_HEAD = "head"
	LINK_LDEP = "ldep"
	LINK_RDEP = "rdep"
)

var (
	// ErrFeatureTable is returned for malformed feature table lines.
	ErrFeatureTable = errors.New("malformed feature table")
	// ErrMissingAttribute is returned when a token lacks a requested attribute.
	ErrMissingAttribute = errors.New("missing attribute")

	columnSplitter = regexp.MustCompile(`\s*` + COLUMN_SEPARATOR + `\s*`)
	linkPattern    = regexp.MustCompile(`^(` + LINK_HEAD + `|` + LINK_LDEP + `|` + LINK_RDEP + `)\((.*)\)$`)
	basePattern    = regexp.MustCompile(`^([a-z_]+)\[(\d+)\]$`)
	joinPattern    = regexp.MustCompile(`^` + JOIN_DESCRIPTOR + `\((.*)\)$`)
	namePattern    = regexp.MustCompile(`^[^\s()\[\],|:]+$`)
)

// Configuration is the view of a parser state the feature table needs.
type Configuration interface {
	// Address returns the node at offset in structure, if any.
	Address(structure string, offset int) (nodeID int, exists bool)
	// Link follows the head, ldep or rdep link of a node.
	Link(nodeID int, link string) (int, bool)
	// Attribute reads an attribute of a node. exists is false for values
	// that are legitimately absent; a token lacking the attribute
	// altogether is an error.
	Attribute(nodeID int, attribute string) (value string, exists bool, err error)
}

// Address is a compiled address: a structure slot followed by links,
// applied first to last.
type Address struct {
	Structure string
	Offset    int
	Links     []string
	str       string
}

func (a *Address) String() string {
	return a.str
}

func (a *Address) resolve(c Configuration) (int, bool) {
	node, exists := c.Address(a.Structure, a.Offset)
	for _, link := range a.Links {
		if !exists {
			break
		}
		node, exists = c.Link(node, link)
	}
	return node, exists
}

// ParseAddress compiles an address such as head(ldep(stk[0])).
func ParseAddress(s string) (*Address, error) {
	var outer []string
	for {
		m := linkPattern.FindStringSubmatch(s)
		if m == nil {
			break
		}
		outer = append(outer, m[1])
		s = strings.TrimSpace(m[2])
	}
	m := basePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: bad address %q", ErrFeatureTable, s)
	}
	offset, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: bad offset in %q: %v", ErrFeatureTable, s, err)
	}
	addr := &Address{Structure: m[1], Offset: offset, Links: make([]string, len(outer))}
	// innermost function first
	for i, link := range outer {
		addr.Links[len(outer)-1-i] = link
	}
	addr.str = fmt.Sprintf("%s[%d]", addr.Structure, addr.Offset)
	for _, link := range addr.Links {
		addr.str += LINK_SEPARATOR + link
	}
	return addr, nil
}

// Descriptor is either a single attribute, applied to every address of its
// line, or a join over one attribute per address.
type Descriptor struct {
	Attributes []string
	Join       bool
}

func (d Descriptor) String() string {
	if d.Join {
		return JOIN_DESCRIPTOR + "(" + strings.Join(d.Attributes, ADDRESS_SEPARATOR) + ")"
	}
	return d.Attributes[0]
}

func parseDescriptor(s string) (Descriptor, error) {
	if m := joinPattern.FindStringSubmatch(s); m != nil {
		parts := strings.Split(m[1], ADDRESS_SEPARATOR)
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
			if !namePattern.MatchString(parts[i]) {
				return Descriptor{}, fmt.Errorf("%w: bad attribute %q in %q", ErrFeatureTable, parts[i], s)
			}
		}
		return Descriptor{parts, true}, nil
	}
	if !namePattern.MatchString(s) {
		return Descriptor{}, fmt.Errorf("%w: bad descriptor %q", ErrFeatureTable, s)
	}
	return Descriptor{[]string{s}, false}, nil
}

// FeatureLine is one compiled line of the table. Addresses index into the
// table's address list.
type FeatureLine struct {
	Addresses   []int
	Descriptors []Descriptor
}

// FeatureTable is a compiled feature specification.
type FeatureTable struct {
	Source    []string // normalized lines the table was compiled from
	Lines     []FeatureLine
	Addresses []*Address
	addrIDs   map[string]int
}

// NewFeatureTable compiles feature table lines. When structures is not
// empty every address must name one of them.
func NewFeatureTable(lines []string, structures ...string) (*FeatureTable, error) {
	f := &FeatureTable{addrIDs: make(map[string]int)}
	for _, line := range lines {
		line = strings.ToLower(strings.TrimSpace(line))
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if err := f.addLine(line, structures); err != nil {
			return nil, err
		}
		f.Source = append(f.Source, line)
	}
	return f, nil
}

// ReadFeatureTable compiles a feature table text.
func ReadFeatureTable(reader io.Reader, structures ...string) (*FeatureTable, error) {
	c, err := conf.Read(reader)
	if err != nil {
		return nil, fmt.Errorf("feature table: %w", err)
	}
	return NewFeatureTable(c.Values, structures...)
}

func ReadFeatureTableFile(filename string, structures ...string) (*FeatureTable, error) {
	c, err := conf.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("feature table: %w", err)
	}
	return NewFeatureTable(c.Values, structures...)
}

func (f *FeatureTable) addLine(line string, structures []string) error {
	columns := columnSplitter.Split(line, -1)
	if len(columns) < 2 {
		return fmt.Errorf("%w: no descriptor in %q", ErrFeatureTable, line)
	}
	addrStrs := strings.Fields(columns[0])
	if len(addrStrs) == 0 {
		return fmt.Errorf("%w: no address in %q", ErrFeatureTable, line)
	}
	var compiled FeatureLine
	for _, addrStr := range addrStrs {
		addr, err := ParseAddress(addrStr)
		if err != nil {
			return fmt.Errorf("line %q: %w", line, err)
		}
		if len(structures) > 0 && !contains(structures, addr.Structure) {
			return fmt.Errorf("%w: unknown structure %q in %q", ErrFeatureTable, addr.Structure, line)
		}
		id, exists := f.addrIDs[addr.String()]
		if !exists {
			id = len(f.Addresses)
			f.addrIDs[addr.String()] = id
			f.Addresses = append(f.Addresses, addr)
		}
		compiled.Addresses = append(compiled.Addresses, id)
	}
	for _, descStr := range columns[1:] {
		desc, err := parseDescriptor(descStr)
		if err != nil {
			return fmt.Errorf("line %q: %w", line, err)
		}
		if desc.Join && len(desc.Attributes) != len(compiled.Addresses) {
			return fmt.Errorf("%w: %s has %d attributes for %d addresses in %q",
				ErrFeatureTable, desc, len(desc.Attributes), len(compiled.Addresses), line)
		}
		compiled.Descriptors = append(compiled.Descriptors, desc)
	}
	f.Lines = append(f.Lines, compiled)
	return nil
}

// WriteTo writes the table source, one line per line.
func (f *FeatureTable) WriteTo(writer io.Writer) (int64, error) {
	n, err := io.WriteString(writer, strings.Join(f.Source, "\n")+"\n")
	return int64(n), err
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// NumFeatures is the number of feature strings Extract emits.
func (f *FeatureTable) NumFeatures() int {
	var n int
	for _, line := range f.Lines {
		for _, desc := range line.Descriptors {
			if desc.Join {
				n++
			} else {
				n += len(line.Addresses)
			}
		}
	}
	return n
}

func (f *FeatureTable) value(c Configuration, node int, exists bool, attribute string) (string, error) {
	if !exists {
		return ABSENT_FEATURE, nil
	}
	value, exists, err := c.Attribute(node, attribute)
	if err != nil {
		return "", err
	}
	if !exists {
		return ABSENT_FEATURE, nil
	}
	return value, nil
}

// Extract returns the feature strings of c, in table order. Each address is
// resolved once per call.
func (f *FeatureTable) Extract(c Configuration) ([]string, error) {
	nodes := make([]int, len(f.Addresses))
	present := make([]bool, len(f.Addresses))
	for i, addr := range f.Addresses {
		nodes[i], present[i] = addr.resolve(c)
	}
	features := make([]string, 0, f.NumFeatures())
	var b strings.Builder
	for _, line := range f.Lines {
		for _, desc := range line.Descriptors {
			if !desc.Join {
				for _, id := range line.Addresses {
					value, err := f.value(c, nodes[id], present[id], desc.Attributes[0])
					if err != nil {
						return nil, err
					}
					b.Reset()
					b.WriteString(f.Addresses[id].String())
					b.WriteString(FIELD_SEPARATOR)
					b.WriteString(desc.Attributes[0])
					b.WriteString(FIELD_SEPARATOR)
					b.WriteString(value)
					features = append(features, b.String())
				}
				continue
			}
			b.Reset()
			for i, id := range line.Addresses {
				if i > 0 {
					b.WriteString(ADDRESS_SEPARATOR)
				}
				b.WriteString(f.Addresses[id].String())
			}
			b.WriteString(FIELD_SEPARATOR)
			b.WriteString(desc.String())
			b.WriteString(FIELD_SEPARATOR)
			for i, id := range line.Addresses {
				value, err := f.value(c, nodes[id], present[id], desc.Attributes[i])
				if err != nil {
					return nil, err
				}
				if i > 0 {
					b.WriteString(ADDRESS_SEPARATOR)
				}
				b.WriteString(value)
			}
			features = append(features, b.String())
		}
	}
	return features, nil
}
