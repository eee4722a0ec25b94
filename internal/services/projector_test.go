package services

import (
	"encoding/json"
	"testing"
	"time"

	"toolnav/internal/i18n"
	"toolnav/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord() *models.ToolRecord {
	rating := 4.5
	views := int64(120)
	featured := true
	trial := true
	created := time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)
	return &models.ToolRecord{
		ID:                  7,
		Slug:                "chatbot",
		URL:                 "https://chatbot.ai",
		Screenshot:          "chatbot.png",
		Name:                i18n.Text{EN: "Chatbot", CN: "聊天机器人"},
		Title:               i18n.Plain("Talk to it"),
		Description:         i18n.Text{EN: "A bot"},
		LongDescription:     i18n.Text{EN: "A long bot", CN: "长"},
		PricingType:         i18n.Text{EN: "paid"},
		CategoryKey:         "chat",
		CategoryName:        i18n.Text{EN: "Chat", CN: "聊天"},
		CategoryDescription: i18n.Text{CN: "聊天工具"},
		Rating:              &rating,
		ViewCount:           &views,
		Featured:            &featured,
		TrialAvailable:      &trial,
		CreatedAt:           &created,
		Tags:                i18n.List{EN: []string{"Writing"}, CN: []string{"写作"}},
		KeyFeatures:         i18n.List{EN: []string{"Fast", "Cheap"}},
	}
}

func TestProjector_Tool(t *testing.T) {
	p := NewProjector(NewMediaResolver("/screenshots"))

	tool := p.Tool(fullRecord(), "cn")
	assert.Equal(t, "聊天机器人", tool.Name)
	assert.Equal(t, "Talk to it", tool.Title)
	assert.Equal(t, "A bot", tool.Description)
	assert.Equal(t, "/api/images/chatbot.png", tool.ThumbnailURL)
	assert.Equal(t, "聊天", tool.CategoryName)
	assert.Equal(t, "paid", tool.PricingType)
	assert.Equal(t, 4.5, tool.Rating)
	assert.Equal(t, int64(120), tool.ViewCount)
	assert.True(t, tool.Featured)
	assert.True(t, tool.TrialAvailable)
	assert.Equal(t, []string{"写作"}, tool.Tags)
	assert.Equal(t, "2024-03-09T12:30:00Z", tool.CreatedAt)
}

func TestProjector_Defaults(t *testing.T) {
	p := NewProjector(NewMediaResolver("https://cdn.example.com"))

	tool := p.Tool(&models.ToolRecord{ID: 1, Slug: "bare", CategoryKey: "misc"}, "en")
	assert.Equal(t, 0.0, tool.Rating)
	assert.Equal(t, int64(0), tool.ViewCount)
	assert.False(t, tool.Featured)
	assert.False(t, tool.TrialAvailable)
	assert.Equal(t, "freemium", tool.PricingType)
	assert.Equal(t, "misc", tool.CategoryName)
	assert.Equal(t, "", tool.ThumbnailURL)
	assert.Equal(t, "", tool.CreatedAt)
	require.NotNil(t, tool.Tags)
	assert.Empty(t, tool.Tags)

	body, err := json.Marshal(tool)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"tags":[]`)
}

func TestProjector_Detail(t *testing.T) {
	p := NewProjector(NewMediaResolver("/screenshots"))

	detail := p.Detail(fullRecord(), "cn")
	assert.Equal(t, int64(7), detail.ID)
	assert.Equal(t, "长", detail.LongDescription)
	assert.Equal(t, "", detail.UseCases)
	assert.Equal(t, []string{"Fast", "Cheap"}, detail.KeyFeatures)
	assert.NotNil(t, detail.IndustryTags)
	assert.Empty(t, detail.IndustryTags)
	assert.Equal(t, "聊天工具", detail.CategoryDescription)

	body, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"long_description":"长"`)
	assert.Contains(t, string(body), `"slug":"chatbot"`)
}

func TestProjector_Minimal(t *testing.T) {
	p := NewProjector(NewMediaResolver(""))

	minimal := p.Minimal(fullRecord(), "en")
	assert.Equal(t, models.MinimalTool{
		ID:       7,
		Name:     "Chatbot",
		Title:    "Talk to it",
		URL:      "https://chatbot.ai",
		Category: "chat",
		Slug:     "chatbot",
	}, minimal)

	assert.NotNil(t, p.Tools(nil, "en"))
	assert.NotNil(t, p.MinimalTools(nil, "en"))
}
