package nlp

import "regexp"

// Lexicon holds every word list and pattern the extractor matches against.
// It is data, not code: the defaults below are a closed-world gazetteer that
// callers can replace wholesale (e.g. loaded from configuration) without
// touching the extraction logic.
type Lexicon struct {
	KoreanStopwords  map[string]struct{}
	EnglishStopwords map[string]struct{}

	Brands    []string
	Locations []string

	// PositiveKorean/NegativeKorean hits count double when scoring
	// sentiment: the corpus skews Korean and its lexicon is sparser.
	PositiveKorean  []string
	NegativeKorean  []string
	PositiveEnglish []string
	NegativeEnglish []string

	// Topics maps a label to the pattern that assigns it. Labels are not
	// mutually exclusive.
	Topics map[string]*regexp.Regexp
}

// koreanPersonPattern matches a common surname followed by a one- or
// two-syllable given name. Deliberately loose: a gazetteer stand-in, not NER.
var koreanPersonPattern = regexp.MustCompile(`(김|박|최|정|강|조|윤|장|임|한|오|서|신|권|황|안|송|전|홍)[가-힣]{1,2}`)

// englishPersonPattern matches capitalized two-word names.
var englishPersonPattern = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)

// DefaultLexicon returns the built-in Korean/English gazetteer.
func DefaultLexicon() Lexicon {
	return Lexicon{
		KoreanStopwords: stringSet(
			"이", "그", "저", "것", "수", "들", "및", "에서", "에게", "으로", "까지",
			"부터", "보다", "처럼", "하다", "있다", "없다", "되다", "이다", "합니다",
			"있습니다", "그리고", "하지만", "그래서", "그런데", "또한", "너무", "정말",
			"진짜", "매우", "아주", "좀", "많이", "다시", "오늘", "지금",
		),
		EnglishStopwords: stringSet(
			"the", "a", "an", "and", "or", "but", "of", "to", "in", "on", "at",
			"for", "with", "by", "from", "as", "is", "are", "was", "were", "be",
			"been", "it", "its", "this", "that", "these", "those", "i", "you",
			"he", "she", "we", "they", "my", "your", "our", "their", "not", "no",
			"do", "does", "did", "have", "has", "had", "will", "would", "can",
			"could", "so", "very", "just", "how", "what", "when", "video", "new",
		),
		Brands: []string{
			"삼성", "samsung", "갤럭시", "galaxy", "애플", "apple", "아이폰", "iphone",
			"lg", "현대", "hyundai", "기아", "kia", "네이버", "naver", "카카오",
			"kakao", "구글", "google", "유튜브", "youtube", "나이키", "nike",
			"아디다스", "adidas", "샤넬", "chanel", "구찌", "gucci", "테슬라", "tesla",
			"소니", "sony", "닌텐도", "nintendo", "플레이스테이션", "playstation",
		},
		Locations: []string{
			"서울", "seoul", "강남", "gangnam", "홍대", "hongdae", "이태원",
			"itaewon", "명동", "부산", "busan", "해운대", "대구", "인천", "광주",
			"대전", "제주", "jeju", "경주", "전주", "tokyo", "도쿄", "오사카",
			"osaka", "paris", "파리", "london", "런던", "new york", "뉴욕", "la",
		},
		PositiveKorean: []string{
			"좋아요", "좋은", "좋다", "최고", "대박", "사랑", "행복", "감사", "멋진",
			"멋있", "예쁜", "예쁘", "귀여운", "꿀잼", "추천", "완벽", "신난다", "재밌",
		},
		NegativeKorean: []string{
			"싫어", "싫다", "나쁜", "최악", "별로", "실망", "화나", "짜증", "노잼",
			"후회", "비추", "망했", "끔찍", "슬프",
		},
		PositiveEnglish: []string{
			"good", "great", "best", "awesome", "amazing", "love", "happy",
			"perfect", "beautiful", "wonderful", "excellent", "fun", "recommend",
		},
		NegativeEnglish: []string{
			"bad", "worst", "terrible", "awful", "hate", "sad", "disappointing",
			"boring", "horrible", "regret", "fail", "broken",
		},
		Topics: map[string]*regexp.Regexp{
			"Technology":    regexp.MustCompile(`(?i)tech|gadget|리뷰|언박싱|unboxing|스마트폰|smartphone|노트북|laptop|ai|코딩|coding`),
			"Gaming":        regexp.MustCompile(`(?i)game|gaming|게임|플레이|gameplay|롤|배그|스팀|steam|콘솔`),
			"Beauty":        regexp.MustCompile(`(?i)beauty|makeup|뷰티|메이크업|화장|스킨케어|skincare|코스메틱|cosmetic`),
			"Food":          regexp.MustCompile(`(?i)food|recipe|먹방|mukbang|요리|맛집|레시피|cooking|디저트|dessert`),
			"Travel":        regexp.MustCompile(`(?i)travel|trip|여행|브이로그.*여행|투어|tour|배낭|호캉스`),
			"Music":         regexp.MustCompile(`(?i)music|song|음악|노래|커버|cover|플레이리스트|playlist|콘서트|concert`),
			"Sports":        regexp.MustCompile(`(?i)sport|운동|축구|soccer|football|야구|baseball|헬스|fitness|홈트`),
			"Education":     regexp.MustCompile(`(?i)study|lecture|공부|강의|학습|tutorial|배우기|how to|인강`),
			"Fashion":       regexp.MustCompile(`(?i)fashion|style|패션|코디|스타일|outfit|룩북|lookbook|하울|haul`),
			"Entertainment": regexp.MustCompile(`(?i)entertainment|예능|드라마|drama|영화|movie|리액션|reaction|웃긴|funny`),
		},
	}
}

func stringSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
