package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chatquestbot/internal/config"
	"chatquestbot/internal/models"
	"chatquestbot/internal/services"
)

func (h *Handler) handleModerationMenu(message *tgbotapi.Message) {
	if !h.users.IsOperator(message.From.ID) {
		h.reply(message.Chat.ID, "❌ Эта команда доступна только операторам")
		return
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, "Модерация:")
	msg.ReplyMarkup = moderationKeyboard()
	h.send(msg)
}

func (h *Handler) handleStats(message *tgbotapi.Message) {
	if !h.users.IsOperator(message.From.ID) {
		h.reply(message.Chat.ID, "Эта команда доступна только операторам.")
		return
	}
	h.sendStats(message.Chat.ID)
}

func (h *Handler) sendStats(chatID int64) {
	rows, err := h.stats.AllUsersStats()
	if err != nil {
		log.Printf("Error loading stats: %v", err)
		h.reply(chatID, "❌ Не удалось получить статистику.")
		return
	}
	if len(rows) == 0 {
		h.reply(chatID, "Нет данных по пользователям.")
		return
	}

	text := "Статистика участников:\n\n"
	for idx, row := range rows {
		banned := ""
		if row.IsBanned {
			banned = " [BANNED]"
		}
		text += fmt.Sprintf("%d. @%s - %d баллов | предупреждений: %d%s\n",
			idx+1, displayName(row.Username, row.FirstName), row.TotalPoints, row.WarningsCount, banned)
	}
	h.reply(chatID, text)
}

// handleWarn parses "/warn @username [reason]" (or a numeric user id),
// records the warning, and notifies both sides. The warning and any
// resulting ban commit before the notifications go out.
func (h *Handler) handleWarn(message *tgbotapi.Message) {
	if !h.users.IsOperator(message.From.ID) {
		h.reply(message.Chat.ID, "Эта команда доступна только операторам.")
		return
	}

	args := strings.SplitN(strings.TrimSpace(message.CommandArguments()), " ", 2)
	if args[0] == "" {
		h.reply(message.Chat.ID,
			"Использование: /warn @username [причина]\n"+
				"Пример: /warn @user спам короткими сообщениями")
		return
	}

	target := args[0]
	reason := "Нарушение правил"
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		reason = strings.TrimSpace(args[1])
	}

	user, err := h.resolveUser(target)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.reply(message.Chat.ID, "Пользователь не найден в базе.")
			return
		}
		log.Printf("Error resolving user %q: %v", target, err)
		h.reply(message.Chat.ID, "❌ Не удалось выдать предупреждение.")
		return
	}

	updated, err := h.warnings.Issue(user.ID, message.From.ID, reason)
	if err != nil {
		log.Printf("Error issuing warning to %d: %v", user.ID, err)
		h.reply(message.Chat.ID, "❌ Не удалось выдать предупреждение.")
		return
	}

	response := fmt.Sprintf(
		"Предупреждение выдано.\nПользователь: %s\nПричина: %s\nВсего предупреждений: %d/%d\n",
		target, reason, updated.WarningsCount, config.MaxWarnings,
	)
	if updated.IsBanned {
		response += "\nПользователь исключен из геймификации."
	}
	h.reply(message.Chat.ID, response)

	notice := fmt.Sprintf("Вы получили предупреждение.\nПричина: %s\nПредупреждений: %d/%d\n",
		reason, updated.WarningsCount, config.MaxWarnings)
	if updated.IsBanned {
		notice += "\nВы исключены из геймификации на текущую неделю."
	} else {
		notice += fmt.Sprintf("\nОсталось до исключения: %d", config.MaxWarnings-updated.WarningsCount)
	}
	h.reply(updated.ID, notice)
}

func (h *Handler) resolveUser(target string) (*models.User, error) {
	if username, ok := strings.CutPrefix(target, "@"); ok {
		return h.users.FindByUsername(username)
	}
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		return h.users.Find(id)
	}
	return nil, services.ErrUserNotFound
}

func (h *Handler) handleSendTask(message *tgbotapi.Message) {
	if !h.users.IsOperator(message.From.ID) {
		h.reply(message.Chat.ID, "Эта команда доступна только операторам.")
		return
	}
	if err := h.SendRandomTask(); err != nil {
		log.Printf("Error sending task: %v", err)
		h.reply(message.Chat.ID, fmt.Sprintf("Ошибка при отправке задания: %v", err))
		return
	}
	h.reply(message.Chat.ID, "Задание отправлено.")
}

func (h *Handler) handleWeekEnd(message *tgbotapi.Message) {
	if !h.users.IsOperator(message.From.ID) {
		h.reply(message.Chat.ID, "Эта команда доступна только операторам.")
		return
	}
	if err := h.SendWeekResults(); err != nil {
		log.Printf("Error sending week results: %v", err)
		h.reply(message.Chat.ID, fmt.Sprintf("Ошибка: %v", err))
		return
	}
	h.reply(message.Chat.ID, "Итоги недели отправлены.")
}

func (h *Handler) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	data := query.Data

	switch {
	case strings.HasPrefix(data, "approve_"):
		h.handleReviewCallback(query, strings.TrimPrefix(data, "approve_"), true)
	case strings.HasPrefix(data, "reject_"):
		h.handleReviewCallback(query, strings.TrimPrefix(data, "reject_"), false)
	case data == "mod_stats":
		if !h.requireOperatorCallback(query) {
			return
		}
		h.sendStats(query.Message.Chat.ID)
		h.answerCallback(query, "")
	case data == "mod_send_task":
		if !h.requireOperatorCallback(query) {
			return
		}
		if err := h.SendRandomTask(); err != nil {
			log.Printf("Error sending task: %v", err)
			h.answerCallbackAlert(query, "Ошибка при отправке задания")
			return
		}
		h.answerCallback(query, "Задание отправлено")
	case data == "mod_week_end":
		if !h.requireOperatorCallback(query) {
			return
		}
		if err := h.SendWeekResults(); err != nil {
			log.Printf("Error sending week results: %v", err)
			h.answerCallbackAlert(query, "Ошибка при отправке итогов")
			return
		}
		h.answerCallback(query, "Итоги недели отправлены")
	case data == "mod_warn":
		if !h.requireOperatorCallback(query) {
			return
		}
		h.reply(query.Message.Chat.ID, "Для выдачи предупреждения: /warn @username [причина]")
		h.answerCallback(query, "")
	}
}

// handleReviewCallback runs one moderation decision. A second press on the
// same answer reports "already reviewed" and changes nothing.
func (h *Handler) handleReviewCallback(query *tgbotapi.CallbackQuery, idPart string, approve bool) {
	if !h.users.IsOperator(query.From.ID) {
		h.answerCallbackAlert(query, "Только операторы могут проверять ответы")
		return
	}

	answerID, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		h.answerCallbackAlert(query, "Некорректный идентификатор ответа")
		return
	}

	answer, awarded, err := h.answers.Review(answerID, approve, query.From.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnswerNotFound):
			h.answerCallbackAlert(query, "Ответ не найден")
		case errors.Is(err, services.ErrAlreadyReviewed):
			h.answerCallbackAlert(query, "Этот ответ уже проверен")
		default:
			log.Printf("Error reviewing answer %d: %v", answerID, err)
			h.answerCallbackAlert(query, "Не удалось проверить ответ, попробуйте еще раз")
		}
		return
	}

	var verdict string
	if approve {
		verdict = fmt.Sprintf("\n\n✅ ОДОБРЕНО (%d баллов)", awarded)
	} else {
		verdict = "\n\n❌ ОТКЛОНЕНО"
	}
	h.closeReviewMessage(query, verdict)

	if approve {
		h.reply(answer.UserID, fmt.Sprintf("Ваш ответ одобрен. Начислено %d баллов.", awarded))
		h.answerCallback(query, fmt.Sprintf("Ответ одобрен. Начислено %d баллов", awarded))
	} else {
		h.reply(answer.UserID, "Ваш ответ отклонен. Попробуйте еще раз.")
		h.answerCallback(query, "Ответ отклонен")
	}
}

// closeReviewMessage appends the verdict to the forwarded answer and drops
// its keyboard. Media answers carry the text in the caption, text answers
// in the body.
func (h *Handler) closeReviewMessage(query *tgbotapi.CallbackQuery, verdict string) {
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	if query.Message.Caption != "" {
		edit := tgbotapi.NewEditMessageCaption(chatID, messageID, query.Message.Caption+verdict)
		h.send(edit)
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, query.Message.Text+verdict)
	h.send(edit)
}

func (h *Handler) requireOperatorCallback(query *tgbotapi.CallbackQuery) bool {
	if !h.users.IsOperator(query.From.ID) {
		h.answerCallbackAlert(query, "Только операторы")
		return false
	}
	return true
}

func (h *Handler) answerCallback(query *tgbotapi.CallbackQuery, text string) {
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}

func (h *Handler) answerCallbackAlert(query *tgbotapi.CallbackQuery, text string) {
	if _, err := h.api.Request(tgbotapi.NewCallbackWithAlert(query.ID, text)); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}
