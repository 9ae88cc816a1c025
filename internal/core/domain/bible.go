package domain

// Books lists the 66 canonical book names in canonical order.
var Books = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel", "1 Kings", "2 Kings",
	"1 Chronicles", "2 Chronicles", "Ezra", "Nehemiah", "Esther", "Job",
	"Psalms", "Proverbs", "Ecclesiastes", "Song of Solomon", "Isaiah",
	"Jeremiah", "Lamentations", "Ezekiel", "Daniel", "Hosea", "Joel",
	"Amos", "Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk", "Zephaniah",
	"Haggai", "Zechariah", "Malachi", "Matthew", "Mark", "Luke", "John",
	"Acts", "Romans", "1 Corinthians", "2 Corinthians", "Galatians",
	"Ephesians", "Philippians", "Colossians", "1 Thessalonians",
	"2 Thessalonians", "1 Timothy", "2 Timothy", "Titus", "Philemon",
	"Hebrews", "James", "1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

var chapterCounts = map[string]int{
	"Genesis": 50, "Exodus": 40, "Leviticus": 27, "Numbers": 36, "Deuteronomy": 34,
	"Joshua": 24, "Judges": 21, "Ruth": 4, "1 Samuel": 31, "2 Samuel": 24,
	"1 Kings": 22, "2 Kings": 25, "1 Chronicles": 29, "2 Chronicles": 36,
	"Ezra": 10, "Nehemiah": 13, "Esther": 10, "Job": 42, "Psalms": 150,
	"Proverbs": 31, "Ecclesiastes": 12, "Song of Solomon": 8, "Isaiah": 66,
	"Jeremiah": 52, "Lamentations": 5, "Ezekiel": 48, "Daniel": 12, "Hosea": 14,
	"Joel": 3, "Amos": 9, "Obadiah": 1, "Jonah": 4, "Micah": 7, "Nahum": 3,
	"Habakkuk": 3, "Zephaniah": 3, "Haggai": 2, "Zechariah": 14, "Malachi": 4,
	"Matthew": 28, "Mark": 16, "Luke": 24, "John": 21, "Acts": 28, "Romans": 16,
	"1 Corinthians": 16, "2 Corinthians": 13, "Galatians": 6, "Ephesians": 6,
	"Philippians": 4, "Colossians": 4, "1 Thessalonians": 5, "2 Thessalonians": 3,
	"1 Timothy": 6, "2 Timothy": 4, "Titus": 3, "Philemon": 1, "Hebrews": 13,
	"James": 5, "1 Peter": 5, "2 Peter": 3, "1 John": 5, "2 John": 1,
	"3 John": 1, "Jude": 1, "Revelation": 22,
}

// Translation identifies a supported Bible translation.
type Translation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Translations lists the translations the verse endpoints can serve.
var Translations = []Translation{
	{ID: "kjv", Name: "King James Version"},
	{ID: "asv", Name: "American Standard Version"},
	{ID: "web", Name: "World English Bible"},
	{ID: "darby", Name: "Darby Bible"},
	{ID: "ylt", Name: "Youngs Literal Translation (NT only)"},
}

// IsCanonicalBook reports whether name is one of the 66 canonical books.
func IsCanonicalBook(name string) bool {
	_, ok := chapterCounts[name]
	return ok
}

// BookNumber returns the 1-based canonical position of a book
// (Genesis=1 ... Revelation=66), or 0 for an unknown book.
func BookNumber(name string) int {
	for i, b := range Books {
		if b == name {
			return i + 1
		}
	}
	return 0
}

// IsOldTestament reports whether the book belongs to the Old Testament.
// Unknown books return false.
func IsOldTestament(name string) bool {
	n := BookNumber(name)
	return n >= 1 && n <= 39
}

// ChapterCount returns the number of chapters in a book, 0 if unknown.
func ChapterCount(book string) int {
	return chapterCounts[book]
}

// GetChaptersForBook returns the chapter numbers of a book in order,
// e.g. Ruth -> [1 2 3 4]. Unknown books yield an empty slice.
func GetChaptersForBook(book string) []int {
	n := chapterCounts[book]
	chapters := make([]int, n)
	for i := range chapters {
		chapters[i] = i + 1
	}
	return chapters
}
