package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordParser(t *testing.T) {
	parser := NewKeywordParser()

	tests := []struct {
		message string
		want    IntentType
	}{
		{"I want to book tickets", IntentBook},
		{"BOOK", IntentBook},
		{"can I reserve a visit?", IntentBook},
		{"what are the prices?", IntentPrices},
		{"how much is a ticket", IntentPrices},
		{"which dates are available?", IntentDates},
		{"when are you open", IntentDates},
		{"pay", IntentPay},
		{"checkout please", IntentPay},
		{"yes", IntentYes},
		{"confirm", IntentYes},
		{"no", IntentNo},
		{"cancel", IntentCancel},
		{"cancel my booking", IntentCancel},
		{"", IntentUnknown},
		{"asdf", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.Parse(tt.message).Type)
		})
	}
}

func TestKeywordParserDate(t *testing.T) {
	parser := NewKeywordParser()

	intent := parser.Parse(" 2026-03-12 ")
	assert.Equal(t, "2026-03-12", intent.Date)

	intent = parser.Parse("12/03/2026")
	assert.Empty(t, intent.Date)
}

func TestKeywordParserQuantity(t *testing.T) {
	parser := NewKeywordParser()

	intent := parser.Parse("2")
	assert.True(t, intent.HasQuantity)
	assert.Equal(t, 2, intent.Quantity)

	intent = parser.Parse("0")
	assert.True(t, intent.HasQuantity)
	assert.Equal(t, 0, intent.Quantity)

	intent = parser.Parse("-1")
	assert.False(t, intent.HasQuantity)

	intent = parser.Parse("two")
	assert.False(t, intent.HasQuantity)
}
