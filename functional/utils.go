package functional

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/go-faker/faker/v4"
)

func randomQuote() string {
	quote := struct {
		Sentence string `faker:"sentence"`
	}{}

	err := faker.FakeData(&quote)
	if err != nil {
		fmt.Println(err)
		return ""
	}

	return quote.Sentence
}

// generateTextPayload builds a compressible payload of exactly n bytes out
// of random sentences.
func generateTextPayload(n int) []byte {
	var sb strings.Builder
	for sb.Len() < n {
		quote := randomQuote()
		if quote == "" {
			quote = "lorem ipsum"
		}
		sb.WriteString(quote)
		sb.WriteString(" ")
	}
	return []byte(sb.String()[:n])
}

func generateBytes(n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil
	}
	return b
}
