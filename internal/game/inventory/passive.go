package inventory

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Passive is an always-on behaviour granted by an equipped item.
type Passive int

const (
	PassiveNone Passive = iota
	Vampiric
	SearingEdge
	SoulReaver
	Thornmail
	Aegis
	Phoenix
	Regrowth
	SwiftBoots
	Chronoband
	PackMule
)

var passiveIDs = map[Passive]string{
	PassiveNone: "",
	Vampiric:    "vampiric",
	SearingEdge: "searing_edge",
	SoulReaver:  "soul_reaver",
	Thornmail:   "thornmail",
	Aegis:       "aegis",
	Phoenix:     "phoenix",
	Regrowth:    "regrowth",
	SwiftBoots:  "swift_boots",
	Chronoband:  "chronoband",
	PackMule:    "pack_mule",
}

func (p Passive) String() string {
	if id, ok := passiveIDs[p]; ok && id != "" {
		return id
	}
	if p == PassiveNone {
		return "none"
	}
	return fmt.Sprintf("passive(%d)", int(p))
}

// ParsePassive resolves a passive id. An empty id yields PassiveNone.
func ParsePassive(id string) (Passive, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || id == "none" {
		return PassiveNone, nil
	}
	for p, pid := range passiveIDs {
		if pid == id {
			return p, nil
		}
	}
	return PassiveNone, fmt.Errorf("inventory: unknown passive %q", id)
}

// UnmarshalYAML decodes a Passive from its id.
func (p *Passive) UnmarshalYAML(node *yaml.Node) error {
	var id string
	if err := node.Decode(&id); err != nil {
		return err
	}
	parsed, err := ParsePassive(id)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
