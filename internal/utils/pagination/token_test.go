package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	startTime := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	recordID := "7d9f1a2b-3c4d-5e6f-7a8b-9c0d1e2f3a4b"

	// Encode the token
	token := EncodeToken(startTime, recordID)
	assert.NotEmpty(t, token, "Token should not be empty")

	// Decode the token and verify
	decodedTime, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, startTime, decodedTime, "Start time should match after decode")
	assert.Equal(t, recordID, decodedID, "Record ID should match after decode")

	// Test case 2: Zero time value
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, "id")
	decodedZeroTime, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")
	assert.Equal(t, "id", decodedZeroID)

	// Test case 3: Current time value
	now := time.Now().UTC()
	nowToken := EncodeToken(now, recordID)
	decodedNowTime, _, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid time format
	invalidTimeToken := "bm90YWRhdGV8c29tZS1pZA==" // Base64 encoded "notadate|some-id"
	_, _, err = DecodeToken(invalidTimeToken)
	assert.Error(t, err, "Should return an error for invalid time format")
	assert.Contains(t, err.Error(), "start time parse", "Error should mention time parsing issue")
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	date := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	token := EncodeDateBasedToken(date)
	assert.NotEmpty(t, token)

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err)
	assert.Equal(t, date, decoded)

	_, err = DecodeDateBasedToken("not base64!")
	assert.Error(t, err)
}
