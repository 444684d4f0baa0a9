package config

type StorageKeyStruct struct{}

func NewStorageKeyStruct() *StorageKeyStruct {
	return &StorageKeyStruct{}
}

// RemoteQuestionSet returns the redis key holding the serialized QuestionSet
func (r *StorageKeyStruct) RemoteQuestionSet() string {
	return "qboard:questions"
}

// MirrorQuestions returns the client mirror key for the questions array
func (r *StorageKeyStruct) MirrorQuestions() string {
	return "hiban_questions"
}

// MirrorRevealed returns the client mirror key for the revealed flags
func (r *StorageKeyStruct) MirrorRevealed() string {
	return "hiban_revealed"
}

var StorageKey = NewStorageKeyStruct()
