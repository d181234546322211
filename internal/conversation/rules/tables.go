package rules

// Continuation phrases ask for the next page of the active search.
var Continuation = Table{
	word(`(?:give me |show me |find )?(?:more|another|additional)`, "more"),
	word(`next(?: [0-9]+)?`, "next"),
	word(`continue`, "continue"),
	word(`еще`, "еще"),
	stem(`следующ`, "следующие"),
	word(`больше`, "больше"),
	stem(`дополнительн`, "дополнительно"),
	stem(`продолж`, "продолжи"),
	word(`тағы`, "тағы"),
	stem(`келесі`, "келесі"),
}

// SearchMarkers identify a turn that asks for companies at all.
var SearchMarkers = Table{
	stem(`компани`, "компании"),
	stem(`организаци`, "организации"),
	stem(`фирм`, "фирмы"),
	stem(`предприяти`, "предприятия"),
	stem(`найд|найт|найди`, "найди"),
	stem(`поиск|ищ`, "поиск"),
	stem(`покаж`, "покажи"),
	word(`compan(?:y|ies)`, "companies"),
	word(`firms?|business(?:es)?`, "companies"),
	word(`find|search|look for|show`, "find"),
	stem(`тап`, "тап"),
}

// Activities maps activity stems in Russian, Kazakh and English to the
// keyword sent to the record store.
var Activities = Table{
	word(`it|айти`, "IT"),
	stem(`информационн|software|программн`, "IT"),
	stem(`технолог|technolog`, "технологии"),
	stem(`строитель|construct|құрылыс`, "строительство"),
	stem(`торгов|trade|trading|retail|сауда`, "торговля"),
	stem(`транспорт|логистик|logistic`, "транспорт"),
	stem(`производств|manufactur`, "производство"),
	stem(`медицин|medical|clinic|healthcare`, "медицина"),
	stem(`образова|education`, "образование"),
	stem(`финанс|financ`, "финансы"),
	stem(`банк|bank`, "банк"),
	stem(`страхов|insurance`, "страхование"),
	stem(`нефт|нефтегаз|oil`, "нефть"),
	stem(`горнодобыва|mining`, "добыча"),
	stem(`сельскохозяйств|agricultur|farming`, "сельское хозяйство"),
	stem(`пищев|food`, "пищевая"),
	stem(`текстил|textile`, "текстиль"),
	stem(`химическ|chemical`, "химическая"),
	stem(`металлург|metallurg`, "металлургия"),
	stem(`электротехн|electric`, "электротехника"),
	stem(`телекоммуникац|telecom`, "телекоммуникации"),
	stem(`гостинич|hotel`, "гостиницы"),
	stem(`ресторан|restaurant|кафе|cafe`, "рестораны"),
	stem(`услуг|services?`, "услуги"),
}
