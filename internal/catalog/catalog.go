// Package catalog holds the static domain data shared by the simulator:
// the coding-sequence parts a user can place on the plasmid and the fixed
// ten-stage animation timeline.
package catalog

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxSelected is the number of parts the plasmid can hold.
	MaxSelected = 4
	// StageCount is the length of the animation timeline.
	StageCount = 10
	// DefaultStageDuration is how long each stage animates.
	DefaultStageDuration = 3 * time.Second
	// DefaultColor tints protein visuals when no part colour is available.
	DefaultColor = "#006D77"
)

// Part is a selectable coding sequence. Parts are never mutated once the
// catalog is built.
type Part struct {
	ID          string
	ShortName   string
	FullName    string
	ColorHex    string
	Description string
}

// Stage is one step of the animation timeline.
type Stage struct {
	Index       int
	Title       string
	Description string
	Duration    time.Duration
}

var defaultParts = []Part{
	{
		ID:          "egfp",
		ShortName:   "EGFP",
		FullName:    "Enhanced Green Fluorescent Protein",
		ColorHex:    "#00FF00",
		Description: "A bright green fluorescent protein widely used in molecular biology research.",
	},
	{
		ID:          "mrfp1",
		ShortName:   "mRFP1",
		FullName:    "Monomeric Red Fluorescent Protein 1",
		ColorHex:    "#FF0000",
		Description: "A monomeric red fluorescent protein derived from DsRed.",
	},
	{
		ID:          "mtagbfp2",
		ShortName:   "mTagBFP2",
		FullName:    "Monomeric Tag Blue Fluorescent Protein 2",
		ColorHex:    "#0000FF",
		Description: "A bright blue fluorescent protein optimized for mammalian expression.",
	},
}

var stages = [StageCount]Stage{
	{0, "DNA Setup", "Double helix DNA structure is established", DefaultStageDuration},
	{1, "DNA Unwinding", "DNA strands separate at the transcription start site", DefaultStageDuration},
	{2, "RNA Polymerase Binding", "RNA polymerase enzyme binds to the promoter region", DefaultStageDuration},
	{3, "Transcription Initiation", "RNA polymerase begins synthesizing mRNA", DefaultStageDuration},
	{4, "mRNA Formation", "Messenger RNA is transcribed from the DNA template", DefaultStageDuration},
	{5, "Ribosome Binding", "Ribosome binds to the mRNA molecule", DefaultStageDuration},
	{6, "tRNA Recruitment", "Transfer RNA molecules bring amino acids to the ribosome", DefaultStageDuration},
	{7, "Protein Synthesis", "Amino acids are linked together to form a polypeptide chain", DefaultStageDuration},
	{8, "Protein Folding", "The polypeptide chain folds into its functional 3D structure", DefaultStageDuration},
	{9, "Protein Complete", "The fluorescent protein is complete and begins to glow", DefaultStageDuration},
}

// DefaultParts returns the built-in coding sequences in display order.
func DefaultParts() []Part {
	out := make([]Part, len(defaultParts))
	copy(out, defaultParts)
	return out
}

// Stages returns the animation timeline in playback order.
func Stages() []Stage {
	out := make([]Stage, StageCount)
	copy(out, stages[:])
	return out
}

// StageAt returns the stage at index i. ok is false outside 0..StageCount-1.
func StageAt(i int) (Stage, bool) {
	if i < 0 || i >= StageCount {
		return Stage{}, false
	}
	return stages[i], true
}

// Designated returns the part whose colour tints the protein stages: the
// first part placed on the plasmid.
func Designated(parts []Part) (Part, bool) {
	if len(parts) == 0 {
		return Part{}, false
	}
	return parts[0], true
}

// DesignatedColor is the hex colour of the designated part, or DefaultColor.
func DesignatedColor(parts []Part) string {
	p, ok := Designated(parts)
	if !ok {
		return DefaultColor
	}
	return ColorOf(p)
}

// ColorOf returns the part's colour, falling back to DefaultColor when the
// colour is missing or malformed.
func ColorOf(p Part) string {
	if _, err := ParseColor(p.ColorHex); err != nil {
		return DefaultColor
	}
	return p.ColorHex
}

// ExpressedMessage announces a finished run: the protein's full name, or a
// summary when several were expressed.
func ExpressedMessage(parts []Part) string {
	switch {
	case len(parts) > 1:
		return "Multiple proteins successfully expressed!"
	case len(parts) == 1:
		return parts[0].FullName + " successfully expressed!"
	}
	return "Protein successfully expressed!"
}

// ParseColor parses "#RRGGBB" or "#RGB".
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
