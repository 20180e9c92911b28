package i18n

// Message keys. Values are printf formats registered per language in catalogEntries.
const (
	AppTitle          = "app.title"
	Welcome           = "app.welcome"
	Settings          = "start.settings"
	PressEnter        = "start.press_enter"
	QuestionOf        = "question.of"
	ScoreStreak       = "question.score_streak"
	TimeLeft          = "question.time_left"
	Controls          = "question.controls"
	ControlsNoHint    = "question.controls_no_hint"
	HintText          = "question.hint_text"
	HintRemoved       = "question.hint_removed"
	Correct           = "answer.correct"
	Wrong             = "answer.wrong"
	Skipped           = "answer.skipped"
	TimesUp           = "answer.times_up"
	PointsAwarded     = "answer.points"
	NextPrompt        = "answer.next"
	QuizCompleted     = "results.completed"
	FinalScore        = "results.final_score"
	CorrectAnswers    = "results.correct_answers"
	Accuracy          = "results.accuracy"
	AverageTime       = "results.average_time"
	LongestStreak     = "results.longest_streak"
	Unlocked          = "results.unlocked"
	NewHighScore      = "results.new_high_score"
	EnterName         = "results.enter_name"
	ScoreSaved        = "results.score_saved"
	HighScoresTitle   = "scores.title"
	NoScores          = "scores.none"
	AchievementsTitle = "achievements.title"
	StatsTitle        = "stats.title"
	NoPlayers         = "stats.none"
	GamesPlayed       = "stats.games_played"
	HighestScore      = "stats.highest_score"
	Answered          = "stats.answered"
	CategoriesTitle   = "categories.title"
	DifficultiesTitle = "categories.difficulties"
	NoQuestions       = "error.no_questions"
	InvalidAnswer     = "error.invalid_answer"
	InvalidDifficulty = "error.invalid_difficulty"
	InvalidLength     = "error.invalid_length"
	Error             = "error.generic"
	Goodbye           = "app.goodbye"
)

type entry struct {
	key string
	en  string
	ar  string
}

var catalogEntries = []entry{
	{AppTitle, "Quiz Master", "سيد الاختبار"},
	{Welcome, "Test your knowledge and compete for high scores!", "اختبر معلوماتك وتنافس على أعلى الدرجات!"},
	{Settings, "%d questions · category: %s · difficulty: %s · timer: %s", "%d سؤال · الفئة: %s · الصعوبة: %s · المؤقت: %s"},
	{PressEnter, "Press Enter to start, q to quit.", "اضغط Enter للبدء، q للخروج."},
	{QuestionOf, "Question %d of %d", "سؤال %d من %d"},
	{ScoreStreak, "Score: %d   Streak: %d", "النتيجة: %d   التتابع: %d"},
	{TimeLeft, "%d seconds remaining", "%d ثواني متبقية"},
	{Controls, "[1-4] answer   [h] hint (-%d pts)   [s] skip   [q] quit", "[1-4] إجابة   [h] تلميح (-%d نقاط)   [s] تخطي   [q] خروج"},
	{ControlsNoHint, "[1-4] answer   [s] skip   [q] quit", "[1-4] إجابة   [s] تخطي   [q] خروج"},
	{HintText, "Hint: %s", "تلميح: %s"},
	{HintRemoved, "Removed option: %s (-%d pts)", "تم حذف الخيار: %s (-%d نقاط)"},
	{Correct, "Correct!", "إجابة صحيحة!"},
	{Wrong, "Wrong! The correct answer was: %s", "إجابة خاطئة! الإجابة الصحيحة: %s"},
	{Skipped, "Skipped. The correct answer was: %s", "تم التخطي. الإجابة الصحيحة: %s"},
	{TimesUp, "Time's up! The correct answer was: %s", "انتهى الوقت! الإجابة الصحيحة: %s"},
	{PointsAwarded, "+%d points (base %d, time %d, streak %d)", "+%d نقطة (أساسي %d، وقت %d، تتابع %d)"},
	{NextPrompt, "Press Enter to continue.", "اضغط Enter للمتابعة."},
	{QuizCompleted, "Quiz Completed!", "اكتمل الاختبار!"},
	{FinalScore, "Final Score: %d", "النتيجة النهائية: %d"},
	{CorrectAnswers, "Correct Answers: %d/%d", "الإجابات الصحيحة: %d/%d"},
	{Accuracy, "Accuracy: %.1f%%", "الدقة: %.1f%%"},
	{AverageTime, "Average Time: %.1f seconds", "متوسط الوقت: %.1f ثانية"},
	{LongestStreak, "Longest Streak: %d", "أطول تتابع: %d"},
	{Unlocked, "Achievement unlocked: %s", "تم فتح إنجاز: %s"},
	{NewHighScore, "New High Score!", "رقم قياسي جديد!"},
	{EnterName, "Enter your name:", "أدخل اسمك:"},
	{ScoreSaved, "Score saved.", "تم حفظ النتيجة."},
	{HighScoresTitle, "High Scores", "أعلى الدرجات"},
	{NoScores, "No high scores yet!", "لا توجد درجات عالية بعد!"},
	{AchievementsTitle, "Achievements", "الإنجازات"},
	{StatsTitle, "Statistics for %s", "إحصائيات %s"},
	{GamesPlayed, "Games Played: %d", "الألعاب الملعوبة: %d"},
	{NoPlayers, "No player statistics yet.", "لا توجد إحصائيات للاعبين بعد."},
	{HighestScore, "Highest Score: %d", "أعلى نتيجة: %d"},
	{Answered, "Questions Answered: %d", "الأسئلة المجابة: %d"},
	{CategoriesTitle, "Categories", "الفئات"},
	{DifficultiesTitle, "Difficulties", "مستويات الصعوبة"},
	{NoQuestions, "No questions available for the selected criteria.", "لا توجد أسئلة متاحة للمعايير المحددة."},
	{InvalidAnswer, "Please choose one of the listed options.", "يرجى اختيار أحد الخيارات المعروضة."},
	{InvalidDifficulty, "Unknown difficulty %q. Choose easy, medium, hard or all.", "مستوى صعوبة غير معروف %q. اختر easy أو medium أو hard أو all."},
	{InvalidLength, "Number of questions must be between 1 and %d.", "يجب أن يكون عدد الأسئلة بين 1 و %d."},
	{Error, "Error: %v", "خطأ: %v"},
	{Goodbye, "Goodbye!", "إلى اللقاء!"},
}
