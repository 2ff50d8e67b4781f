package importer

// Template returns the downloadable example layout: a header row plus
// three sample rows with instructions. Purely user guidance; the sample
// content sits on the example-row denylist so re-uploading the file as-is
// imports nothing.
func Template() []byte {
	return []byte("שם,טלפון,כמות אורחים,צד,הערות\n" +
		"ישראל ישראלי,0501234567,2,חתן,שורה לדוגמה - החליפו בנתונים שלכם\n" +
		"ישראלה ישראלי,052-1234567,1,כלה,שורה לדוגמה - אפשר למחוק\n" +
		"דוגמה,+972501234567,3,משותף,שורה לדוגמה - אפשר למחוק\n")
}

// TemplateFilename is the suggested name for the downloaded file.
const TemplateFilename = "guest-list-template.csv"
