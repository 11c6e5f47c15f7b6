package intake

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const keySubmitFailed = "submit failed"

var alertLanguages = []language.Tag{language.Thai, language.English}

var alertMatcher = language.NewMatcher(alertLanguages)

func init() {
	mustSetString(language.Thai, keySubmitFailed, "เกิดข้อผิดพลาดในการส่งข้อมูล กรุณาลองใหม่อีกครั้ง")
	mustSetString(language.English, keySubmitFailed, "An error occurred while sending your information. Please try again.")
}

func mustSetString(tag language.Tag, key, msg string) {
	if err := message.SetString(tag, key, msg); err != nil {
		panic(fmt.Sprintf("intake: alert catalog %s %q: %v", tag, key, err))
	}
}

// SubmitFailedMessage is the blocking alert shown after a failed submit.
// Unsupported languages fall back to Thai.
func SubmitFailedMessage(tag language.Tag) string {
	_, idx, _ := alertMatcher.Match(tag)
	return message.NewPrinter(alertLanguages[idx]).Sprintf(keySubmitFailed)
}
