package triage

// Static conversational vocabulary. Symptom tokens come from the catalog;
// everything here is about how people phrase answers, not what they have.

var yesPhrases = []string{
	"yes", "y", "yeah", "yep", "sure", "correct", "right", "i do", "i have", "affirmative",
}

var noPhrases = []string{
	"no", "n", "nope", "nah", "negative", "i don't", "i do not", "i havent", "haven't",
}

var maybePhrases = []string{
	"maybe", "not sure", "unsure", "idk", "dont know", "don't know",
}

var greetingPhrases = map[string]bool{
	"hi": true, "hello": true, "hey": true, "yo": true, "hola": true,
	"hi there": true, "hello there": true,
	"assalamualaikum": true, "as-salamu alaykum": true, "salam": true,
	"good morning": true, "good afternoon": true, "good evening": true,
	"start": true, "start again": true, "restart": true,
}

var thanksPhrases = []string{
	"thanks", "thank you", "thx", "ty", "appreciate it", "many thanks",
}

var farewellPhrases = []string{
	"bye", "goodbye", "see you", "take care", "okay bye", "ok bye",
}

// symptomAliases maps informal phrasing to canonical catalog tokens. Catalog
// synonym columns extend this table at matcher construction.
var symptomAliases = map[string]string{
	"snakebite":         "snake bite",
	"snake-bite":        "snake bite",
	"snake":             "snake bite",
	"bitten by snake":   "snake bite",
	"bitten by a snake": "snake bite",

	"burnt":        "burn",
	"burned":       "burn",
	"burn injury":  "burn",
	"hand burn":    "burn",
	"burn on hand": "burn",
}

// friendlyLabels replaces terse catalog tokens with a phrasing that reads
// better inside a question.
var friendlyLabels = map[string]string{
	"mosquito":            "recent mosquito bites or exposure",
	"shortness of breath": "shortness of breath",
	"loss of smell":       "loss of smell",
}
