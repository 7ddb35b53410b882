package bot

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chatquestbot/internal/models"
)

var contentTypeEmoji = map[models.ContentType]string{
	models.ContentTypeText:  "📝",
	models.ContentTypePhoto: "📷",
	models.ContentTypeVideo: "🎥",
	models.ContentTypeMixed: "🎯",
}

var weekPrizes = []string{
	"Место в первом ряду 🎟️",
	"Приоритет в питчинге 🗣️",
	"VIP-зона с пуфиками 😎",
}

// SendRandomTask broadcasts a random active task to the group chat. The
// daily-task row commits before the announcement goes out; a failed send is
// logged but the broadcast stays recorded.
func (h *Handler) SendRandomTask() error {
	daily, err := h.tasks.BroadcastRandomTask()
	if err != nil {
		return err
	}

	task := daily.Task
	emoji, ok := contentTypeEmoji[task.ContentType]
	if !ok {
		emoji = "🎯"
	}

	text := fmt.Sprintf(
		"%s НОВОЕ ЗАДАНИЕ!\n\n%s\n\n"+
			"💰 Награда: %d баллов\n"+
			"📊 Тип: %s\n\n"+
			"Ответьте на это сообщение, чтобы выполнить задание!",
		emoji, task.Text, task.Points, task.ContentType,
	)

	if _, err := h.api.Send(tgbotapi.NewMessage(h.cfg.ChatID, text)); err != nil {
		log.Printf("Failed to announce task %d: %v", task.ID, err)
		return nil
	}
	log.Printf("Task %d sent (daily task %d, week %d/%d)", task.ID, daily.ID, daily.WeekNumber, daily.Year)
	return nil
}

// SendWeekResults publishes the weekly leaderboard with prizes for the
// top three.
func (h *Handler) SendWeekResults() error {
	leaderboard, err := h.points.Leaderboard(10)
	if err != nil {
		return err
	}

	var text string
	if len(leaderboard) == 0 {
		text = "🏆 Итоги недели\n\nВ эту неделю не было активных участников."
	} else {
		text = "🏆 Итоги недели!\n\nТоп участников:\n\n"
		medals := []string{"🥇", "🥈", "🥉"}
		for idx, row := range leaderboard {
			medal := fmt.Sprintf("%d.", idx+1)
			if idx < len(medals) {
				medal = medals[idx]
			}
			line := fmt.Sprintf("%s @%s — %d баллов", medal, displayName(row.Username, row.FirstName), row.TotalPoints)
			if idx < len(weekPrizes) {
				line += fmt.Sprintf("\n   🎁 %s", weekPrizes[idx])
			}
			text += line + "\n\n"
		}
		text += "\n🎉 Поздравляем победителей!\n\nСпасибо всем за участие!"
	}

	if _, err := h.api.Send(tgbotapi.NewMessage(h.cfg.ChatID, text)); err != nil {
		log.Printf("Failed to send week results: %v", err)
		return nil
	}
	log.Println("Week results sent")
	return nil
}

// forwardToOperators sends the freshly submitted answer to every operator
// with the review keyboard attached. Failures per operator are logged and
// skipped; the answer stays pending either way.
func (h *Handler) forwardToOperators(message *tgbotapi.Message, answer *models.Answer, daily *models.DailyTask) {
	caption := fmt.Sprintf(
		"📌 Новый ответ на задание:\n"+
			"👤 От: @%s\n"+
			"🎯 Задание: %s\n"+
			"💰 Баллы: %d\n"+
			"🆔 Answer ID: %d",
		displayName(message.From.UserName, message.From.FirstName),
		daily.Task.Text,
		daily.Task.Points,
		answer.ID,
	)
	keyboard := reviewKeyboard(answer.ID)

	for _, operatorID := range h.cfg.OperatorIDs {
		var msg tgbotapi.Chattable
		switch answer.ContentType {
		case models.ContentTypePhoto:
			photo := tgbotapi.NewPhoto(operatorID, tgbotapi.FileID(answer.Content))
			photo.Caption = caption
			photo.ReplyMarkup = keyboard
			msg = photo
		case models.ContentTypeVideo:
			video := tgbotapi.NewVideo(operatorID, tgbotapi.FileID(answer.Content))
			video.Caption = caption
			video.ReplyMarkup = keyboard
			msg = video
		default:
			text := tgbotapi.NewMessage(operatorID, fmt.Sprintf("%s\n\n📄 Текст:\n%s", caption, answer.Content))
			text.ReplyMarkup = keyboard
			msg = text
		}

		if _, err := h.api.Send(msg); err != nil {
			log.Printf("Failed to forward answer %d to operator %d: %v", answer.ID, operatorID, err)
		}
	}
}
