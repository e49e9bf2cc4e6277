package domain

// Общий конверт ответа: status дублирует HTTP-код, error — только публичный
// текст, без внутренних деталей.
type APIEnvelope struct {
	Status    int          `json:"status"`
	Error     string       `json:"error,omitempty"`
	Duplicate *bool        `json:"duplicate,omitempty"`
	File      *FileRecord  `json:"file,omitempty"`
	Files     []FileRecord `json:"files,omitempty"`
	Message   string       `json:"message,omitempty"`
}

// Утилиты для сборки конвертов
func OkFile(status int, duplicate bool, f FileRecord) APIEnvelope {
	return APIEnvelope{Status: status, Duplicate: &duplicate, File: &f}
}

func OkFiles(files []FileRecord) APIEnvelope {
	if files == nil {
		files = []FileRecord{}
	}
	return APIEnvelope{Status: 200, Files: files}
}

func Fail(status int, text string) APIEnvelope {
	return APIEnvelope{Status: status, Error: text}
}
