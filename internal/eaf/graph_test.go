package eaf

import (
	"testing"

	"github.com/lingtools/elanstats/internal/model"
)

// fixtureXML is a two-speaker document with a transcription (main) tier,
// a translation (aligned) tier referencing it, and a word-level analysis
// tier. The translation tier is declared before the second transcription
// tier, so a2's translation is a forward reference across tiers.
const fixtureXML = `<?xml version="1.0" encoding="UTF-8"?>
<ANNOTATION_DOCUMENT AUTHOR="" DATE="2019-03-05T14:00:00+03:00" FORMAT="3.0" VERSION="3.0">
  <TIME_ORDER>
    <TIME_SLOT TIME_SLOT_ID="ts1" TIME_VALUE="1000"/>
    <TIME_SLOT TIME_SLOT_ID="ts2" TIME_VALUE="4000"/>
    <TIME_SLOT TIME_SLOT_ID="ts3" TIME_VALUE="4500"/>
    <TIME_SLOT TIME_SLOT_ID="ts4" TIME_VALUE="6500"/>
    <TIME_SLOT TIME_SLOT_ID="ts5"/>
    <TIME_SLOT TIME_SLOT_ID="ts6"/>
  </TIME_ORDER>
  <TIER TIER_ID="tx@P1" LINGUISTIC_TYPE_REF="transcription" PARTICIPANT="P1">
    <ANNOTATION>
      <ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
        <ANNOTATION_VALUE>Привет мир.</ANNOTATION_VALUE>
      </ALIGNABLE_ANNOTATION>
    </ANNOTATION>
    <ANNOTATION>
      <ALIGNABLE_ANNOTATION ANNOTATION_ID="a5" TIME_SLOT_REF1="ts5" TIME_SLOT_REF2="ts6">
        <ANNOTATION_VALUE>без отметки времени</ANNOTATION_VALUE>
      </ALIGNABLE_ANNOTATION>
    </ANNOTATION>
  </TIER>
  <TIER TIER_ID="ft@P2" LINGUISTIC_TYPE_REF="translation" PARENT_REF="tx@P2">
    <ANNOTATION>
      <REF_ANNOTATION ANNOTATION_ID="a20" ANNOTATION_REF="a2">
        <ANNOTATION_VALUE>How are you?</ANNOTATION_VALUE>
      </REF_ANNOTATION>
    </ANNOTATION>
  </TIER>
  <TIER TIER_ID="tx@P2" LINGUISTIC_TYPE_REF="transcription" PARTICIPANT="interviewer P2">
    <ANNOTATION>
      <ALIGNABLE_ANNOTATION ANNOTATION_ID="a2" TIME_SLOT_REF1="ts3" TIME_SLOT_REF2="ts4">
        <ANNOTATION_VALUE>Как дела?</ANNOTATION_VALUE>
      </ALIGNABLE_ANNOTATION>
    </ANNOTATION>
  </TIER>
  <TIER TIER_ID="ft@P1" LINGUISTIC_TYPE_REF="translation" PARENT_REF="tx@P1">
    <ANNOTATION>
      <REF_ANNOTATION ANNOTATION_ID="a10" ANNOTATION_REF="a1">
        <ANNOTATION_VALUE>Hello world.</ANNOTATION_VALUE>
      </REF_ANNOTATION>
    </ANNOTATION>
    <ANNOTATION>
      <REF_ANNOTATION ANNOTATION_ID="a50" ANNOTATION_REF="a5">
        <ANNOTATION_VALUE>no timestamp</ANNOTATION_VALUE>
      </REF_ANNOTATION>
    </ANNOTATION>
    <ANNOTATION>
      <REF_ANNOTATION ANNOTATION_ID="a99" ANNOTATION_REF="missing">
        <ANNOTATION_VALUE>dangling</ANNOTATION_VALUE>
      </REF_ANNOTATION>
    </ANNOTATION>
  </TIER>
  <TIER TIER_ID="word@P1" LINGUISTIC_TYPE_REF="word" PARENT_REF="tx@P1">
    <ANNOTATION>
      <REF_ANNOTATION ANNOTATION_ID="w1" ANNOTATION_REF="a1">
        <ANNOTATION_VALUE>Привет</ANNOTATION_VALUE>
      </REF_ANNOTATION>
    </ANNOTATION>
    <ANNOTATION>
      <REF_ANNOTATION ANNOTATION_ID="w2" ANNOTATION_REF="a1">
        <ANNOTATION_VALUE>мир</ANNOTATION_VALUE>
      </REF_ANNOTATION>
    </ANNOTATION>
  </TIER>
</ANNOTATION_DOCUMENT>`

func fixtureConfig() model.CorpusConfig {
	return model.CorpusConfig{
		MainTiers:    []string{"transcription"},
		AlignedTiers: []string{"translation"},
		TierLanguages: []model.TierRule{
			{Pattern: "transcription", Value: "russian"},
			{Pattern: "translation", Value: "english"},
		},
		AnalysisTiers: []model.TierRule{
			{Pattern: "word", Value: "word"},
		},
	}
}

func decodeFixture(t *testing.T) *Document {
	t.Helper()
	doc, err := Decode([]byte(fixtureXML))
	if err != nil {
		t.Fatalf("Expected fixture to decode, got %v", err)
	}
	return doc
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode([]byte("<ANNOTATION_DOCUMENT><TIER>")); err == nil {
		t.Fatal("Expected malformed document to fail decoding")
	}
}

func TestBuildTimeLabels(t *testing.T) {
	doc := decodeFixture(t)
	tlis := BuildTimeLabels(doc)

	if len(tlis) != 6 {
		t.Fatalf("Expected 6 time labels, got %d", len(tlis))
	}
	if tlis["ts2"].Ordinal != 1 || tlis["ts2"].Value != "4000" {
		t.Errorf("ts2 = %+v, want ordinal 1 value 4000", tlis["ts2"])
	}

	// An anchor without a timestamp keeps its empty sentinel and does not
	// resolve to zero seconds.
	if tlis["ts5"].Value != "" {
		t.Errorf("ts5 value = %q, want empty", tlis["ts5"].Value)
	}
	if _, err := tlis.Seconds("ts5"); err == nil {
		t.Error("Expected unresolved anchor to fail Seconds()")
	}
	if _, err := tlis.Seconds("nope"); err == nil {
		t.Error("Expected unknown anchor to fail Seconds()")
	}
	sec, err := tlis.Seconds("ts1")
	if err != nil {
		t.Fatalf("Expected ts1 to resolve, got %v", err)
	}
	if sec != 1.0 {
		t.Errorf("ts1 = %g seconds, want 1.0", sec)
	}
}

func TestBuildGraph(t *testing.T) {
	doc := decodeFixture(t)
	rs := testRuleset(t, fixtureConfig())
	g := BuildGraph(doc, rs)

	if len(g.Segments) != 9 {
		t.Fatalf("Expected 9 segments, got %d", len(g.Segments))
	}

	a1 := g.Segments["a1"]
	if a1.Text != "Привет мир." || a1.Parent != "" || a1.Start != "ts1" || a1.End != "ts2" {
		t.Errorf("a1 = %+v", a1)
	}

	// a10 is declared after a1 in a later tier, so it inherits the
	// parent's time references already during construction.
	a10 := g.Segments["a10"]
	if a10.Parent != "a1" || a10.Start != "ts1" || a10.End != "ts2" {
		t.Errorf("a10 = %+v, want refs inherited from a1", a10)
	}

	// a20 is declared before its parent a2: nothing to inherit yet.
	if a20 := g.Segments["a20"]; a20.Start != "" || a20.End != "" {
		t.Errorf("a20 = %+v, want unresolved before the resolution pass", a20)
	}

	// Analysis tier children are indexed under (parent, semantic type) in
	// encounter order.
	children := g.Children[ChildKey{Parent: "a1", TierType: "word"}]
	if len(children) != 2 || children[0] != "w1" || children[1] != "w2" {
		t.Errorf("children of a1 = %v, want [w1 w2]", children)
	}
}

func TestGraph_ResolveInherited(t *testing.T) {
	doc := decodeFixture(t)
	rs := testRuleset(t, fixtureConfig())
	g := BuildGraph(doc, rs)
	g.ResolveInherited()

	// Forward reference across tiers resolves in the second pass.
	a20 := g.Segments["a20"]
	if a20.Start != "ts3" || a20.End != "ts4" {
		t.Errorf("a20 = %+v, want refs inherited from a2", a20)
	}

	// The dangling parent reference stays unresolved, not an error.
	if a99 := g.Segments["a99"]; a99.Aligned() {
		t.Errorf("a99 = %+v, want unresolved", a99)
	}
}
