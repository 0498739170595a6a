package models

// Option is one selectable choice of a multiple-choice question.
type Option struct {
	Letter string `bson:"letter" json:"letter"`
	Text   string `bson:"text" json:"text"`
}

// Question lives in the external question store; this service only ever reads
// the fields needed to grade a submission.
type Question struct {
	ID            string   `bson:"_id,omitempty" json:"id"`
	TopicID       string   `bson:"topic_id" json:"topic_id"`
	Content       string   `bson:"content" json:"content"`
	Options       []Option `bson:"options" json:"options"`
	CorrectAnswer string   `bson:"correct_answer" json:"correct_answer"`
	Explanation   string   `bson:"explanation" json:"explanation"`
}

// AnswerKeyEntry is the grading view of one question: the correct letter plus
// the letter-to-text mapping of its options.
type AnswerKeyEntry struct {
	CorrectLetter string
	OptionTexts   map[string]string
}

// AnswerKey maps question id to its grading entry.
type AnswerKey map[string]AnswerKeyEntry

// Key converts a slice of store questions into an answer key.
func Key(questions []Question) AnswerKey {
	key := make(AnswerKey, len(questions))
	for _, q := range questions {
		texts := make(map[string]string, len(q.Options))
		for _, opt := range q.Options {
			texts[opt.Letter] = opt.Text
		}
		key[q.ID] = AnswerKeyEntry{CorrectLetter: q.CorrectAnswer, OptionTexts: texts}
	}
	return key
}
