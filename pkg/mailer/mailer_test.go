package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQuotationEscapesContent(t *testing.T) {
	html, err := RenderQuotation(QuotationEmail{
		Lang:        "en",
		Heading:     "Your quotation",
		QuotationID: "QUO-JPDR-000007",
		Title:       "<Airport> run",
		Lines:       []QuotationLine{{Description: "Charter", Amount: "¥15,000"}},
		TotalLabel:  "Total",
		Total:       "¥16,500",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "QUO-JPDR-000007")
	assert.Contains(t, html, "&lt;Airport&gt; run")
	assert.Contains(t, html, "¥16,500")
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}

func TestBuildMsgRequiresRecipient(t *testing.T) {
	_, err := buildMsg("Fleet", "ops@example.jp", Message{Subject: "x"})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestBuildMsgSetsHeaders(t *testing.T) {
	msg, err := buildMsg("Fleet", "ops@example.jp", Message{
		To:      "customer@example.jp",
		BCC:     []string{"audit@example.jp"},
		Subject: "Quotation",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Quotation"}, msg.GetGenHeader("Subject"))
	to := msg.GetTo()
	require.Len(t, to, 1)
	assert.Equal(t, "customer@example.jp", to[0].Address)
	assert.Len(t, msg.GetBcc(), 1)
}
