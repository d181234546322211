package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	companymodels "ayala/internal/companies/models"
	"ayala/internal/conversation/rules"
)

// phrase is one user-facing text in every reply language.
type phrase struct {
	ru, en, kk string
}

func (p phrase) in(lang rules.Language) string {
	switch lang {
	case rules.LanguageEnglish:
		return p.en
	case rules.LanguageKazakh:
		return p.kk
	default:
		return p.ru
	}
}

var (
	msgNothingFound = phrase{
		ru: "К сожалению, по вашему запросу не найдено подходящих компаний. Попробуйте изменить критерии поиска.",
		en: "Unfortunately, no matching companies were found for your request. Please try different criteria.",
		kk: "Өкінішке орай, сіздің сұранысыңыз бойынша сәйкес компаниялар табылмады. Басқа сүзгілерді қолданып көріңіз.",
	}
	msgNoMore = phrase{
		ru: "Я искал компании в %s, но больше результатов по вашему запросу нет. Может, попробуем другой город или изменим ключевые слова?",
		en: "I searched for companies in %s, but there are no more results for your request. Shall we try another city or different keywords?",
		kk: "Мен %s қаласынан компаниялар іздедім, бірақ сұранысыңыз бойынша басқа нәтижелер жоқ. Басқа қаланы немесе кілт сөздерді қолданып көрейік пе?",
	}
	msgNeedLocation = phrase{
		ru: "Чтобы найти компании, мне нужно знать, в каком городе или регионе вы хотите искать. Пожалуйста, укажите местоположение.",
		en: "To find companies I need to know which city or region to search in. Please specify a location.",
		kk: "Компанияларды табу үшін қай қалада немесе облыста іздеу керектігін білуім керек. Орналасқан жерді көрсетіңіз.",
	}
	msgUnclear = phrase{
		ru: "Извините, я не совсем понял ваш запрос. Уточните, пожалуйста, город и сферу деятельности, например: «Найди 10 строительных компаний в Алматы».",
		en: "Sorry, I did not quite understand your request. Please name a city and an industry, for example: \"Find 10 construction companies in Almaty\".",
		kk: "Кешіріңіз, сұранысыңызды түсінбедім. Қаланы және қызмет саласын көрсетіңіз, мысалы: «Алматыдағы 10 құрылыс компаниясын тап».",
	}
	msgGeneral = phrase{
		ru: "Я помогаю искать компании Казахстана по городу и сфере деятельности. Напишите, например: «Найди 10 IT компаний в Астане».",
		en: "I help you find Kazakhstan companies by city and industry. Try, for example: \"Find 10 IT companies in Astana\".",
		kk: "Мен Қазақстан компанияларын қала және сала бойынша іздеуге көмектесемін. Мысалы: «Астанадағы 10 IT компаниясын тап».",
	}
	msgUnavailable = phrase{
		ru: "Поиск компаний временно недоступен. Пожалуйста, повторите запрос через минуту.",
		en: "Company search is temporarily unavailable. Please try again in a minute.",
		kk: "Компанияларды іздеу уақытша қолжетімсіз. Бір минуттан кейін қайталаңыз.",
	}
	msgInternal = phrase{
		ru: "Извините, произошла техническая ошибка. Ваша история разговора сохранена. Попробуйте переформулировать запрос.",
		en: "Sorry, a technical error occurred. Your conversation history is saved. Please try rephrasing your request.",
		kk: "Кешіріңіз, техникалық қате орын алды. Сөйлесу тарихыңыз сақталды. Сұранысты басқаша жазып көріңіз.",
	}
	msgFoundOne = phrase{
		ru: "Я нашел информацию о %d компании:",
		en: "I found information on %d company:",
		kk: "Мен %d компания туралы ақпарат таптым:",
	}
	msgFoundMany = phrase{
		ru: "Я нашел информацию о %d компаниях:",
		en: "I found information on %d companies:",
		kk: "Мен %d компания туралы ақпарат таптым:",
	}
	msgMoreHint = phrase{
		ru: "Напишите «еще», чтобы увидеть следующие результаты.",
		en: "Say \"more\" to see the next results.",
		kk: "Келесі нәтижелерді көру үшін «тағы» деп жазыңыз.",
	}

	lblBIN      = phrase{ru: "БИН", en: "BIN", kk: "БСН"}
	lblActivity = phrase{ru: "Деятельность", en: "Activity", kk: "Қызметі"}
	lblSize     = phrase{ru: "Размер", en: "Size", kk: "Өлшемі"}
	lblLocality = phrase{ru: "Местоположение", en: "Location", kk: "Орналасқан жері"}
	lblTax      = phrase{ru: "Уплачено налогов за %d год", en: "Taxes paid in %d", kk: "%d жылы төленген салық"}
	lblNoValue  = phrase{ru: "не указано", en: "not specified", kk: "көрсетілмеген"}
)

var printerTags = map[rules.Language]language.Tag{
	rules.LanguageRussian: language.Russian,
	rules.LanguageEnglish: language.English,
	rules.LanguageKazakh:  language.Kazakh,
}

// renderResults builds the bullet list reply for a page of companies.
func renderResults(lang rules.Language, companies []companymodels.Company, hasMore bool) string {
	p := message.NewPrinter(printerTags[lang])

	var b strings.Builder
	opening := msgFoundMany
	if len(companies) == 1 {
		opening = msgFoundOne
	}
	b.WriteString(fmt.Sprintf(opening.in(lang), len(companies)))
	b.WriteString("\n")

	for _, c := range companies {
		b.WriteString("\n• **")
		b.WriteString(c.Name)
		b.WriteString("**")
		writeField(&b, lblBIN.in(lang), c.BIN, lang)
		writeField(&b, lblActivity.in(lang), c.Activity, lang)
		writeField(&b, lblSize.in(lang), c.Size, lang)
		if c.Locality != "" {
			writeField(&b, lblLocality.in(lang), c.Locality, lang)
		}
		if year, amount, ok := c.LatestTax(); ok {
			b.WriteString("\n  - ")
			b.WriteString(fmt.Sprintf(lblTax.in(lang), year))
			b.WriteString(": ")
			b.WriteString(p.Sprintf("%.0f ₸", amount))
		}
	}

	if hasMore {
		b.WriteString("\n\n")
		b.WriteString(msgMoreHint.in(lang))
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string, lang rules.Language) {
	if strings.TrimSpace(value) == "" {
		value = lblNoValue.in(lang)
	}
	b.WriteString("\n  - ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
}
