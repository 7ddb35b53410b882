package bot

import (
	"errors"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chatquestbot/internal/config"
	"chatquestbot/internal/models"
	"chatquestbot/internal/services"
)

// Handler routes Telegram updates into the core services.
type Handler struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	users    *services.UserService
	tasks    *services.TaskService
	answers  *services.AnswerService
	activity *services.ActivityService
	warnings *services.WarningService
	stats    *services.StatsService
	points   *services.PointsService
}

// New creates a new Handler
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	users *services.UserService,
	tasks *services.TaskService,
	answers *services.AnswerService,
	activity *services.ActivityService,
	warnings *services.WarningService,
	stats *services.StatsService,
	points *services.PointsService,
) *Handler {
	return &Handler{
		api:      api,
		cfg:      cfg,
		users:    users,
		tasks:    tasks,
		answers:  answers,
		activity: activity,
		warnings: warnings,
		stats:    stats,
		points:   points,
	}
}

// HandleUpdate dispatches one inbound update.
func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		h.handleMessage(update.Message)
	}
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(update.CallbackQuery)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	if _, err := h.users.Register(
		message.From.ID,
		message.From.UserName,
		message.From.FirstName,
		message.From.LastName,
	); err != nil {
		log.Printf("Error registering user %d: %v", message.From.ID, err)
	}

	if message.Chat.IsPrivate() {
		h.handlePrivateMessage(message)
		return
	}

	if message.Chat.IsGroup() || message.Chat.IsSuperGroup() {
		h.handleGroupMessage(message)
	}
}

func (h *Handler) handlePrivateMessage(message *tgbotapi.Message) {
	if message.IsCommand() {
		switch message.Command() {
		case "start":
			h.handleStart(message)
		case "help":
			h.handleHelp(message)
		case "menu":
			h.handleMenu(message)
		case "my_points":
			h.handleMyPoints(message)
		case "top":
			h.handleTop(message)
		case "stats":
			h.handleStats(message)
		case "warn":
			h.handleWarn(message)
		case "send_task":
			h.handleSendTask(message)
		case "week_end":
			h.handleWeekEnd(message)
		}
		return
	}

	switch message.Text {
	case btnMyPoints:
		h.handleMyPoints(message)
	case btnTop:
		h.handleTop(message)
	case btnHelp:
		h.handleHelp(message)
	case btnModeration:
		h.handleModerationMenu(message)
	}
}

// handleGroupMessage processes messages from the configured group chat:
// replies to the bot's broadcast become task answers, everything else
// counts toward chat activity.
func (h *Handler) handleGroupMessage(message *tgbotapi.Message) {
	if message.Chat.ID != h.cfg.ChatID {
		return
	}

	banned, err := h.users.IsBanned(message.From.ID)
	if err != nil {
		log.Printf("Error checking ban state for %d: %v", message.From.ID, err)
		return
	}
	if banned {
		return
	}

	if message.ReplyToMessage != nil &&
		message.ReplyToMessage.From != nil &&
		message.ReplyToMessage.From.ID == h.api.Self.ID {
		h.handleTaskAnswer(message)
		return
	}

	if message.Text != "" {
		if _, err := h.activity.RecordActivity(message.From.ID, message.Text); err != nil {
			log.Printf("Error recording activity for %d: %v", message.From.ID, err)
		}
	}
}

func (h *Handler) handleStart(message *tgbotapi.Message) {
	h.reply(message.Chat.ID,
		"🎮 Добро пожаловать в ChatQuestBot!\n\n"+
			"Выполняй ежедневные задания, участвуй в обсуждениях и зарабатывай баллы!\n\n"+
			"Доступные команды:\n"+
			"/my_points - мои баллы\n"+
			"/top - топ участников\n"+
			"/help - помощь")

	menu := tgbotapi.NewMessage(message.Chat.ID, "Меню функций:")
	menu.ReplyMarkup = mainMenuKeyboard(h.users.IsOperator(message.From.ID))
	h.send(menu)
}

func (h *Handler) handleHelp(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, fmt.Sprintf(
		"📖 Как работает бот:\n\n"+
			"1️⃣ Бот отправляет ежедневные задания\n"+
			"2️⃣ Выполняй задания и получай баллы\n"+
			"3️⃣ Участвуй в обсуждениях (%d балл за слово)\n"+
			"4️⃣ В конце недели определяются победители\n\n"+
			"💰 Баллы за задания:\n"+
			"• Текст (≥%d символов) - %d баллов\n"+
			"• Фото - %d баллов\n"+
			"• Видео - %d баллов\n\n"+
			"⚡ За активность в чате:\n"+
			"• Максимум %d баллов в день\n\n"+
			"⚠️ Правила:\n"+
			"• Не спамь короткими сообщениями\n"+
			"• %d предупреждения = исключение\n\n"+
			"Команды:\n"+
			"/my_points - мои баллы\n"+
			"/top - топ-10 участников",
		h.cfg.PointsPerWord,
		h.cfg.MinMessageLength,
		config.TextTaskPoints,
		config.PhotoTaskPoints,
		config.VideoTaskPoints,
		h.cfg.MaxDailyActivityPoints,
		config.MaxWarnings,
	))
}

func (h *Handler) handleMenu(message *tgbotapi.Message) {
	menu := tgbotapi.NewMessage(message.Chat.ID, "Меню функций:")
	menu.ReplyMarkup = mainMenuKeyboard(h.users.IsOperator(message.From.ID))
	h.send(menu)
}

func (h *Handler) handleMyPoints(message *tgbotapi.Message) {
	userID := message.From.ID

	banned, err := h.users.IsBanned(userID)
	if err != nil {
		log.Printf("Error checking ban state for %d: %v", userID, err)
		h.reply(message.Chat.ID, "❌ Не удалось получить данные, попробуйте еще раз.")
		return
	}
	if banned {
		h.reply(message.Chat.ID, "❌ Вы исключены из геймификации на эту неделю.")
		return
	}

	total, err := h.points.UserPoints(userID)
	if err != nil {
		log.Printf("Error loading points for %d: %v", userID, err)
		h.reply(message.Chat.ID, "❌ Не удалось получить данные, попробуйте еще раз.")
		return
	}

	user, err := h.users.Find(userID)
	if err != nil {
		log.Printf("Error loading user %d: %v", userID, err)
		h.reply(message.Chat.ID, "❌ Не удалось получить данные, попробуйте еще раз.")
		return
	}

	daily, err := h.activity.PointsEarnedToday(userID)
	if err != nil {
		log.Printf("Error loading daily activity for %d: %v", userID, err)
		h.reply(message.Chat.ID, "❌ Не удалось получить данные, попробуйте еще раз.")
		return
	}

	dailyCap := h.activity.DailyCap()
	text := fmt.Sprintf(
		"💰 Твои баллы: %d\n"+
			"⚠️ Предупреждения: %d/%d\n\n"+
			"📊 Сегодня за активность: %d/%d баллов\n",
		total, user.WarningsCount, config.MaxWarnings, daily, dailyCap,
	)
	if remaining := dailyCap - daily; remaining > 0 {
		text += fmt.Sprintf("Можно заработать еще %d баллов!", remaining)
	} else {
		text += "Дневной лимит достигнут!"
	}

	h.reply(message.Chat.ID, text)
}

func (h *Handler) handleTop(message *tgbotapi.Message) {
	leaderboard, err := h.points.Leaderboard(10)
	if err != nil {
		log.Printf("Error loading leaderboard: %v", err)
		h.reply(message.Chat.ID, "❌ Не удалось получить данные, попробуйте еще раз.")
		return
	}

	if len(leaderboard) == 0 {
		h.reply(message.Chat.ID, "🏆 Пока нет участников с баллами!")
		return
	}

	text := "🏆 Топ-10 участников недели:\n\n"
	medals := []string{"🥇", "🥈", "🥉"}
	for idx, row := range leaderboard {
		medal := fmt.Sprintf("%d.", idx+1)
		if idx < len(medals) {
			medal = medals[idx]
		}
		text += fmt.Sprintf("%s @%s — %d баллов\n", medal, displayName(row.Username, row.FirstName), row.TotalPoints)
	}

	h.reply(message.Chat.ID, text)
}

// handleTaskAnswer stores a reply to the bot's broadcast as a pending
// answer and forwards it to the operators for review.
func (h *Handler) handleTaskAnswer(message *tgbotapi.Message) {
	daily, err := h.tasks.CurrentDailyTask()
	if err != nil {
		if errors.Is(err, services.ErrNoCurrentTask) {
			return
		}
		log.Printf("Error loading current task: %v", err)
		return
	}

	contentType, content, ok := extractContent(message)
	if !ok {
		return
	}

	answer, err := h.answers.Submit(services.SubmitInput{
		UserID:      message.From.ID,
		DailyTaskID: daily.ID,
		MessageID:   message.MessageID,
		ContentType: contentType,
		Content:     content,
	})
	if err != nil {
		if errors.Is(err, services.ErrAnswerTooShort) {
			h.replyTo(message, fmt.Sprintf("❌ Минимальная длина ответа: %d символов", h.cfg.MinMessageLength))
			return
		}
		log.Printf("Error saving answer from %d: %v", message.From.ID, err)
		h.replyTo(message, "❌ Не удалось сохранить ответ, попробуйте еще раз.")
		return
	}

	h.replyTo(message, "✅ Ответ отправлен на проверку!\nОжидайте одобрения оператора.")
	h.forwardToOperators(message, answer, daily)
}

// extractContent maps a Telegram message onto an answer payload: the text
// itself, or the file id for media. Photos come as size variants; the last
// one is the original resolution.
func extractContent(message *tgbotapi.Message) (models.ContentType, string, bool) {
	switch {
	case message.Text != "":
		return models.ContentTypeText, message.Text, true
	case len(message.Photo) > 0:
		return models.ContentTypePhoto, message.Photo[len(message.Photo)-1].FileID, true
	case message.Video != nil:
		return models.ContentTypeVideo, message.Video.FileID, true
	}
	return "", "", false
}

func displayName(username, firstName string) string {
	if username != "" {
		return username
	}
	return firstName
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) replyTo(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	h.send(msg)
}

// send delivers an outbound message. Delivery failures are logged and
// swallowed: state changes are committed before any notification goes out,
// and a lost notification never unwinds them.
func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}
