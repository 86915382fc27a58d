package reply

// NamePlaceholder marks where the sender's name goes in a welcome template.
const NamePlaceholder = "{name}"

// Texts is the localised wording of the welcome message.
type Texts struct {
	Template      string
	FallbackName  string
	AppButton     string
	ChannelButton string
	ChatButton    string
	StartCommand  string
}

// Locales holds the built-in texts keyed by locale code.
var Locales = map[string]Texts{
	"ru": {
		Template: `🎲 Добро пожаловать в OneDice, {name}!

🎮 Это игра в кубики на TON с рейтинговой системой и офферами.

🚀 Нажмите кнопку ниже, чтобы открыть мини-апп:

💰 Играйте на TON и выигрывайте реальные деньги!
🏆 Соревнуйтесь с другими игроками в рейтинге!
🤝 Создавайте и принимайте офферы на дуэли!
🛍️ Открывайте кейсы с призами!

📢 Подписывайтесь на наш канал для новостей!
💬 Присоединяйтесь к нашему чату для общения!`,
		FallbackName:  "Игрок",
		AppButton:     "Приложение",
		ChannelButton: "Канал",
		ChatButton:    "Наш чат",
		StartCommand:  "Открыть OneDice",
	},
	"en": {
		Template: `🎲 Welcome to OneDice, {name}!

🎮 A dice game on TON with a rating system and offers.

🚀 Tap the button below to open the mini app:

💰 Play on TON and win real money!
🏆 Climb the rating against everyone else!
🤝 Create and accept duel offers!
🛍️ Open cases with prizes!

📢 Subscribe to our channel for news!
💬 Join our chat to talk with the community!`,
		FallbackName:  "Player",
		AppButton:     "App",
		ChannelButton: "Channel",
		ChatButton:    "Our chat",
		StartCommand:  "Open OneDice",
	},
}

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "ru"
