package services

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

//go:embed routing.default.yaml
var defaultRoutingYAML []byte

// Recipients is the outcome of routing one lead. Empty To means no email.
type Recipients struct {
	To []string
	CC []string
}

func (r Recipients) Empty() bool { return len(r.To) == 0 }

type RecipientRule struct {
	To []string `yaml:"to"`
	CC []string `yaml:"cc"`
}

// Area is a named region served by one contact. A lead matches when its
// district is listed, or failing that when its province is listed.
type Area struct {
	Name      string   `yaml:"name"`
	Contact   string   `yaml:"contact"`
	Districts []string `yaml:"districts"`
	Provinces []string `yaml:"provinces"`
}

type RenovationRule struct {
	CC    []string `yaml:"cc"`
	Areas []Area   `yaml:"areas"`
}

// RoutingRules is read-only once routing starts; the area index is built on
// first use and never rebuilt.
type RoutingRules struct {
	NewRoof    RecipientRule  `yaml:"newRoof"`
	Renovation RenovationRule `yaml:"renovation"`
	MetalRoof  RecipientRule  `yaml:"metalRoof"`

	once   sync.Once
	idx    *areaIndex
	idxErr error
}

type areaIndex struct {
	district map[string]int
	province map[string]int
}

// DefaultRoutingRules parses the embedded rule file.
func DefaultRoutingRules() (*RoutingRules, error) {
	return ParseRoutingRules(defaultRoutingYAML)
}

// LoadRoutingRules reads a YAML rule file; an empty path selects the defaults.
func LoadRoutingRules(path string) (*RoutingRules, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRoutingRules()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routing rules %s: %w", path, err)
	}
	return ParseRoutingRules(raw)
}

func ParseRoutingRules(raw []byte) (*RoutingRules, error) {
	var rules RoutingRules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse routing rules: %w", err)
	}
	if _, err := rules.index(); err != nil {
		return nil, err
	}
	return &rules, nil
}

// index returns the area lookup tables, building them once. Overlapping
// areas are rejected.
func (r *RoutingRules) index() (*areaIndex, error) {
	r.once.Do(func() {
		r.idx, r.idxErr = buildAreaIndex(r.Renovation.Areas)
	})
	return r.idx, r.idxErr
}

func buildAreaIndex(areas []Area) (*areaIndex, error) {
	idx := &areaIndex{district: map[string]int{}, province: map[string]int{}}
	for i, a := range areas {
		if strings.TrimSpace(a.Contact) == "" {
			return nil, fmt.Errorf("routing area %q: contact required", a.Name)
		}
		for _, d := range a.Districts {
			k := NormalizePlace(d)
			if k == "" {
				continue
			}
			if j, dup := idx.district[k]; dup && j != i {
				return nil, fmt.Errorf("routing areas %q and %q overlap on district %q", areas[j].Name, a.Name, d)
			}
			idx.district[k] = i
		}
		for _, p := range a.Provinces {
			k := NormalizePlace(p)
			if k == "" {
				continue
			}
			if j, dup := idx.province[k]; dup && j != i {
				return nil, fmt.Errorf("routing areas %q and %q overlap on province %q", areas[j].Name, a.Name, p)
			}
			idx.province[k] = i
		}
	}
	return idx, nil
}

var placePrefixes = []string{"อำเภอ", "เขต", "จังหวัด", "อ.", "จ."}

// NormalizePlace folds a district or province name for matching.
func NormalizePlace(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range placePrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// MatchArea returns the renovation area for a location, if any.
func (r *RoutingRules) MatchArea(district, province string) (Area, bool) {
	idx, err := r.index()
	if err != nil {
		return Area{}, false
	}
	if i, ok := idx.district[NormalizePlace(district)]; ok {
		return r.Renovation.Areas[i], true
	}
	if i, ok := idx.province[NormalizePlace(province)]; ok {
		return r.Renovation.Areas[i], true
	}
	return Area{}, false
}

// Route picks the recipients for a lead. Unrecognized categories and
// unmatched renovation areas yield no To recipients.
func (r *RoutingRules) Route(t lead.ServiceType, district, province string) Recipients {
	switch t {
	case lead.ServiceNewRoof:
		return Recipients{To: clean(r.NewRoof.To), CC: clean(r.NewRoof.CC)}
	case lead.ServiceRenovation:
		out := Recipients{CC: clean(r.Renovation.CC)}
		if a, ok := r.MatchArea(district, province); ok {
			out.To = []string{strings.TrimSpace(a.Contact)}
		}
		return out
	case lead.ServiceMetalRoof:
		return Recipients{To: clean(r.MetalRoof.To), CC: clean(r.MetalRoof.CC)}
	}
	return Recipients{}
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
