package creature

import (
	"fmt"
	"strings"
)

// Kind tags a creature record with its behavior set.
type Kind uint8

const (
	KindNone Kind = iota
	KindExperiencedLeaf
	KindWalkingLeaf
	KindViciousIvy
	KindMrTree
	KindSnail
	KindBushIgel
	KindJumpy
	KindRootTrap
	KindRoot
)

// Variant is the per-kind type index ("normal", "corrupted", ...).
type Variant int

// Experienced leaf variants.
const (
	LeafNormal Variant = iota
	LeafCorrupted
	LeafSpiny
)

// Bush igel variants.
const (
	IgelNormal Variant = iota
	IgelCorrupted
)

var kindNames = map[Kind]string{
	KindExperiencedLeaf: "experienced_leaf",
	KindWalkingLeaf:     "walking_leaf",
	KindViciousIvy:      "vicious_ivy",
	KindMrTree:          "mr_tree",
	KindSnail:           "snail",
	KindBushIgel:        "bush_igel",
	KindJumpy:           "jumpy",
	KindRootTrap:        "root_trap",
	KindRoot:            "root",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a prefab or level name to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("creature: unknown kind %q", s)
}

// ParseVariant resolves a variant name against the kind's variant list.
func ParseVariant(k Kind, s string) (Variant, error) {
	b := Lookup(k)
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return 0, nil
	}
	for i, v := range b.Variants {
		if v == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("creature: %s has no variant %q", k, s)
}

// VariantName is the inverse of ParseVariant.
func VariantName(k Kind, v Variant) string {
	b := Lookup(k)
	if int(v) >= 0 && int(v) < len(b.Variants) {
		return b.Variants[v]
	}
	return fmt.Sprintf("variant(%d)", int(v))
}
