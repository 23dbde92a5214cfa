package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"
	"clublog-service/pkg/logger"
)

// BotNotifierRepository posts rendered report text to the club's
// chat-bot service. Delivery itself is the bot's problem; this side
// only ships formatted text.
type BotNotifierRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
}

// NewBotNotifierRepository creates a new chat-bot notifier repository
func NewBotNotifierRepository(baseURL, bearerToken string, logger logger.Logger) repository.NotifierRepository {
	return &BotNotifierRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
	}
}

// SendReport sends a report message to the bot service and returns the
// delivery task id
func (r *BotNotifierRepository) SendReport(ctx context.Context, msg *entity.ReportMessage) (string, error) {
	body := map[string]interface{}{
		"channelId": msg.ChannelID,
		"message": map[string]string{
			"text": msg.Text,
		},
		"type": "text",
	}
	if !msg.SendAt.IsZero() {
		body["scheduleAt"] = msg.SendAt.UTC().Format(time.RFC3339)
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report message: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/reports/send-message", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("bot service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
			Status string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !response.Success {
		return "", fmt.Errorf("failed to send report: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Report delivery task created",
		"taskId", response.Data.TaskID,
		"channel", msg.ChannelID)

	return response.Data.TaskID, nil
}
