package handler

const (
	StartMessage = `🔨 <b>Клиент аукциона</b>

/status — состояние аукциона и опроса
/auction — аукцион с кнопками
/buy, /wait — купить или ждать
/resetauction — перезапустить раунд аукциона
/game — состояние игры
/startgame, /nextround, /resetgame — управление игрой
/buyproduct <code>ID</code> — купить товар
/setname <code>имя</code> — сменить имя
/stats — статистика
/startpoll, /stoppoll — опрос сервера
/screens, /addscreen, /removescreen — опрашиваемые экраны`

	PollAlreadyRunning = "Опрос уже запущен!"
	PollNotRunning     = "Опрос не запущен!"
	PollStarted        = "Опрос запущен!"
	PollStopped        = "Опрос остановлен!"
	PollStartFailed    = "Ошибка запуска опроса: %v"

	ActionDone      = "✅ Готово"
	ActionFailed    = "❌ %s"
	BuyProductUsage = "❌ Использование: /buyproduct <code>ID</code>"
	SetNameUsage    = "❌ Использование: /setname <code>имя</code>"
	ScreenUsage     = "❌ Использование: %s <code>auction|game|statistics</code>"
	InvalidID       = "❌ Неверный формат ID"
	UnknownScreen   = "❌ Неизвестный экран"
	ScreenAdded     = "✅ Экран <code>%s</code> добавлен"
	ScreenRemoved   = "✅ Экран <code>%s</code> убран"
	ScreenExists    = "⚠️ Экран <code>%s</code> уже опрашивается"
	ScreenMissing   = "⚠️ Экран <code>%s</code> не опрашивается"
	ScreensEmpty    = "📋 <b>Список экранов пуст</b>\n\nДобавить: /addscreen <code>auction</code>"
	RenderFailed    = "❌ Экран пока недоступен"

	callbackActionPrefix = "action:"
)
