package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "HEALTHCOMPANION"
	ServiceName  = "health_companion"
)

// NATS subjects. The note id is appended as the last token.
const (
	SubjectNoteSaved   = "healthcompanion.note.saved"
	SubjectNoteDeleted = "healthcompanion.note.deleted"
)
