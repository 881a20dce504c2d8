package grammar

import "strings"

// normTables holds, per feature, the lookup table from raw source
// abbreviations to canonical values. Raw values are matched lowercase.
//
// The gender table deliberately folds the joint values mn→masculine and
// fn→feminine while mf/fm stay ambiguous and are unpacked into two records
// by the tabular parser. This asymmetry is inherited from the source data
// and must not be "fixed" here.
var normTables = map[Feature]map[string]Value{
	Number: {
		"sg":       Singular,
		"singular": Singular,
		"pl":       Plural,
		"plural":   Plural,
	},
	Case: {
		"nom":        Nominative,
		"nominative": Nominative,
		"acc":        Accusative,
		"akk":        Accusative,
		"accusative": Accusative,
		"dat":        Dative,
		"dative":     Dative,
		"gen":        Genitive,
		"genitive":   Genitive,
	},
	Gender: {
		"m":           Masculine,
		"masc":        Masculine,
		"masculine":   Masculine,
		"f":           Feminine,
		"fem":         Feminine,
		"feminine":    Feminine,
		"n":           Neuter,
		"neut":        Neuter,
		"neuter":      Neuter,
		"mfn":         Unspecified,
		"unspecified": Unspecified,
		"mf":          Masculine,
		"mn":          Masculine,
		"fm":          Feminine,
		"fn":          Feminine,
	},
	Degree: {
		"pos":         Positive,
		"positive":    Positive,
		"comp":        Comparative,
		"comparative": Comparative,
		"sup":         Superlative,
		"superlative": Superlative,
	},
	InflectionType: {
		"st":     Strong,
		"strong": Strong,
		"wk":     Weak,
		"weak":   Weak,
		"mixed":  Mixed,
	},
	Mood: {
		"ind":         Indicative,
		"indc":        Indicative,
		"indicative":  Indicative,
		"subj":        Subjunctive,
		"konj":        Subjunctive,
		"subjunctive": Subjunctive,
		"imp":         Imperative,
		"imperative":  Imperative,
		// Verb tables carry the non-finite forms in the mood column; the
		// record model relocates these to nonFinType.
		"inf":        Infinitive,
		"infinitive": Infinitive,
		"part":       Participle,
		"participle": Participle,
	},
	Tense: {
		"pres":    Present,
		"present": Present,
		"past":    Past,
		"pret":    Past,
	},
	Person: {
		"1":      First,
		"1p":     First,
		"first":  First,
		"2":      Second,
		"2p":     Second,
		"second": Second,
		"3":      Third,
		"3p":     Third,
		"third":  Third,
	},
	NonFinType: {
		"inf":        Infinitive,
		"infinitive": Infinitive,
		"part":       Participle,
		"participle": Participle,
	},
}

// Normalize maps a raw source-specific value for feature f to its canonical
// value. Unknown raw values normalize to Unset, never to an error: the
// pipeline treats an unrecognized encoding as "feature not asserted".
func Normalize(f Feature, raw string) Value {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return Unset
	}
	return normTables[f][raw]
}

// AmbiguousGender reports whether raw is one of the joint gender values
// (mf, fm) that the tabular parser unpacks into one record per gender.
func AmbiguousGender(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mf", "fm":
		return true
	}
	return false
}
