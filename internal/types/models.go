package types

// Metadata column names appended to every feature vector.
const (
	KeyCandidateID   = "candidate_id"
	KeyCEFRLevel     = "cefr_level"
	KeyVoiceNotePath = "voice_note_path"
)

// PendingLevel marks candidates whose English level has not been assessed yet.
const PendingLevel = "Pending"

type CandidateRecord struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	VoiceNotePath string `json:"voice_note_path"`
	EnglishLevel  string `json:"english_level"`
	MatchedOffers string `json:"matched_offers,omitempty"`
}

// FeatureVector maps feature names to numeric, boolean or string values for one audio file.
type FeatureVector map[string]any

// IsMetadataKey reports whether key is one of the columns the pipeline attaches itself.
func IsMetadataKey(key string) bool {
	switch key {
	case KeyCandidateID, KeyCEFRLevel, KeyVoiceNotePath:
		return true
	}
	return false
}

// WithCandidate returns a copy of v labelled with the candidate's id, level and source path.
func (v FeatureVector) WithCandidate(c CandidateRecord) FeatureVector {
	out := make(FeatureVector, len(v)+3)
	for k, val := range v {
		out[k] = val
	}
	out[KeyCandidateID] = c.ID
	out[KeyCEFRLevel] = c.EnglishLevel
	out[KeyVoiceNotePath] = c.VoiceNotePath
	return out
}
