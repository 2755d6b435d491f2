package textatlas

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shapedGlyph is one positioned glyph out of shaping: the glyph id plus
// its horizontal advance at the shaped size.
type shapedGlyph struct {
	GID     font.GID
	Advance float32
}

// glyphCluster is a shaped cluster tagged with the index of the section
// its source runes came from. Newline marks an explicit line break;
// newline clusters are consumed by layout and contribute neither
// bitmaps nor advance.
type glyphCluster struct {
	Glyphs  []shapedGlyph
	Section int
	Newline bool
}

// lineMetrics carries the font's vertical line metrics at the shaped
// size. Descent is normalized positive (distance below the baseline).
type lineMetrics struct {
	Ascent  float32
	Descent float32
	Leading float32
}

// LineHeight returns the baseline-to-baseline distance.
func (m lineMetrics) LineHeight() float32 {
	return m.Ascent + m.Descent + m.Leading
}

// shapeSections shapes all sections as one continuous left-to-right run
// in the default script, tagging every output cluster with its
// originating section. size is the effective pixel size, already
// adjusted for the display scale factor.
//
// HarfbuzzShaper has internal mutable state and is not safe for
// concurrent use; the pipeline owns one instance per goroutine.
func shapeSections(
	shaper *shaping.HarfbuzzShaper,
	face *font.Face,
	sections []Section,
	size float32,
	lang language.Language,
) ([]glyphCluster, lineMetrics) {
	// Concatenate section runes, remembering each rune's section.
	var runes []rune
	var runeSection []int
	for i := range sections {
		for _, r := range sections[i].Text {
			runes = append(runes, r)
			runeSection = append(runeSection, i)
		}
	}
	if len(runes) == 0 {
		return nil, lineMetrics{}
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    language.Latin,
		Language:  lang,
	}

	output := shaper.Shape(input)

	// LineBounds.Descent is negative (below baseline); layout wants the
	// absolute distance.
	descent := fixedToFloat(output.LineBounds.Descent)
	if descent < 0 {
		descent = -descent
	}
	metrics := lineMetrics{
		Ascent:  fixedToFloat(output.LineBounds.Ascent),
		Descent: descent,
		Leading: fixedToFloat(output.LineBounds.Gap),
	}

	// Regroup the flat glyph stream into clusters. For an LTR run the
	// glyphs arrive in text order with non-decreasing cluster indices.
	var clusters []glyphCluster
	for i := 0; i < len(output.Glyphs); {
		ci := output.Glyphs[i].ClusterIndex
		j := i
		for j < len(output.Glyphs) && output.Glyphs[j].ClusterIndex == ci {
			j++
		}

		cluster := glyphCluster{
			Glyphs:  make([]shapedGlyph, 0, j-i),
			Section: runeSection[ci],
			Newline: runes[ci] == '\n',
		}
		for k := i; k < j; k++ {
			cluster.Glyphs = append(cluster.Glyphs, shapedGlyph{
				GID:     output.Glyphs[k].GlyphID,
				Advance: fixedToFloat(output.Glyphs[k].XAdvance),
			})
		}
		clusters = append(clusters, cluster)
		i = j
	}

	return clusters, metrics
}

// floatToFixed converts a float32 size to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits.
func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float32.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}
