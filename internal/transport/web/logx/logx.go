package logx

import "log"

// Тонкие хелперы поверх std log: единый формат строк с req_id и операцией.

func Info(l *log.Logger, reqID, op, msg string) {
	l.Printf("lvl=info req_id=%s op=%s msg=%q", reqID, op, msg)
}

func Error(l *log.Logger, reqID, op, msg string, err error) {
	l.Printf("lvl=error req_id=%s op=%s msg=%q err=%v", reqID, op, msg, err)
}
