package domain

import "fmt"

const (
	ChatRequestType = "הודעת צאט"

	ETAQuestion = "מה צפי ההגעה של הנהג?"
)

var ChatTemplates = []string{
	"המכולה מלאה, אשמח לתאם פינוי.",
	"צריך להחליף את המכולה במכולה ריקה.",
	"האם ניתן לקבל מכולה נוספת?",
	ETAQuestion,
	"תודה רבה על השירות המהיר!",
	"יש לי שאלה בנוגע לחיוב.",
	"האם ניתן להאריך את זמן השהייה של המכולה?",
	"עדכון כתובת - הפינוי יתבצע מכתובת אחרת.",
	"בקשה דחופה למכולה, אנא צרו קשר.",
	"הכל בסדר, רק רציתי לוודא שההזמנה התקבלה.",
}

// ETAReply answers the driver ETA template locally from the main order.
// ok is false for every other message.
func ETAReply(session Session, message string) (reply string, ok bool) {
	if message != ETAQuestion {
		return "", false
	}

	order, found := session.MainOrder()
	if !found || (order.ETA == "" && order.DriverName == "") {
		return "המידע על הנהג טרם עודכן, נציג יענה לך בהקדם.", true
	}

	driver := "הנהג"
	if order.DriverName != "" {
		driver = "הנהג " + order.DriverName
	}
	eta := order.ETA
	if eta == "" {
		eta = "בקרוב"
	}

	return fmt.Sprintf("היי %s, %s בדרך. זמן ההגעה המשוער הוא %s.", FirstName(session.ClientName), driver, eta), true
}
