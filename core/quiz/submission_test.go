package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswers_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Answers
		wantErr error
	}{
		{name: "missing answers", body: `{}`, want: nil},
		{name: "null answers", body: `{"answers": null}`, want: nil},
		{name: "empty answers", body: `{"answers": {}}`, want: Answers{}},
		{
			name: "string ids", body: `{"answers": {"1": "2", "3": "4"}}`,
			want: Answers{{QuestionID: "1", AnswerID: "2"}, {QuestionID: "3", AnswerID: "4"}},
		},
		{
			name: "number ids", body: `{"answers": {"1": 2, "3": 4.5}}`,
			want: Answers{{QuestionID: "1", AnswerID: "2"}, {QuestionID: "3", AnswerID: "4.5"}},
		},
		{
			name: "duplicate question ids are kept in order", body: `{"answers": {"1": "2", "1": "3", "1": "2"}}`,
			want: Answers{{QuestionID: "1", AnswerID: "2"}, {QuestionID: "1", AnswerID: "3"}, {QuestionID: "1", AnswerID: "2"}},
		},
		{
			name: "non scalar values never match", body: `{"answers": {"1": [2], "2": {"a": 1}, "3": true, "4": null}}`,
			want: Answers{{QuestionID: "1"}, {QuestionID: "2"}, {QuestionID: "3"}, {QuestionID: "4"}},
		},
		{name: "answers is a list", body: `{"answers": [1, 2]}`, wantErr: ErrInvalidAnswers},
		{name: "answers is a string", body: `{"answers": "1"}`, wantErr: ErrInvalidAnswers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub Submission
			err := json.Unmarshal([]byte(tt.body), &sub)
			if err != tt.wantErr {
				t.Fatalf("json.Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				assert.Equal(t, tt.want, sub.Answers)
			}
		})
	}
}

func TestAnswerPair_ids(t *testing.T) {
	tests := []struct {
		name   string
		pair   AnswerPair
		wantQ  int
		wantA  int
		wantOk bool
	}{
		{name: "valid", pair: AnswerPair{"12", "7"}, wantQ: 12, wantA: 7, wantOk: true},
		{name: "padded", pair: AnswerPair{" 12 ", "7 "}, wantQ: 12, wantA: 7, wantOk: true},
		{name: "bad question", pair: AnswerPair{"abc", "7"}},
		{name: "bad answer", pair: AnswerPair{"12", "x"}},
		{name: "float answer", pair: AnswerPair{"12", "4.5"}},
		{name: "empty answer", pair: AnswerPair{"12", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, a, ok := tt.pair.ids()
			if q != tt.wantQ || a != tt.wantA || ok != tt.wantOk {
				t.Errorf("ids() = (%d, %d, %v), want (%d, %d, %v)", q, a, ok, tt.wantQ, tt.wantA, tt.wantOk)
			}
		})
	}
}
