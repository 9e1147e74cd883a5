package vocab

// builtinWords is the word list shipped with the binary, keyed by course.
var builtinWords = map[CourseID][]Word{
	Junior1600: {
		{ID: "j1", Text: "apple", Meaning: "苹果", Phonetic: "/ˈæpl/", PartOfSpeech: "n.", Example: "She eats an apple every morning."},
		{ID: "j2", Text: "borrow", Meaning: "借入", Phonetic: "/ˈbɒrəʊ/", PartOfSpeech: "v.", Example: "Can I borrow your pen?"},
		{ID: "j3", Text: "careful", Meaning: "小心的", Phonetic: "/ˈkeəfl/", PartOfSpeech: "adj.", Example: "Be careful when you cross the road."},
		{ID: "j4", Text: "different", Meaning: "不同的", Phonetic: "/ˈdɪfrənt/", PartOfSpeech: "adj.", Example: "We live in different cities."},
		{ID: "j5", Text: "environment", Meaning: "环境", Phonetic: "/ɪnˈvaɪrənmənt/", PartOfSpeech: "n.", Example: "We should protect the environment."},
		{ID: "j6", Text: "forget", Meaning: "忘记", Phonetic: "/fəˈɡet/", PartOfSpeech: "v.", Example: "Don't forget your homework."},
		{ID: "j7", Text: "healthy", Meaning: "健康的", Phonetic: "/ˈhelθi/", PartOfSpeech: "adj.", Example: "Vegetables keep you healthy."},
		{ID: "j8", Text: "library", Meaning: "图书馆", Phonetic: "/ˈlaɪbrəri/", PartOfSpeech: "n.", Example: "I study in the library after school."},
		{ID: "j9", Text: "medicine", Meaning: "药", Phonetic: "/ˈmedsn/", PartOfSpeech: "n.", Example: "Take this medicine twice a day."},
		{ID: "j10", Text: "quickly", Meaning: "快速地", Phonetic: "/ˈkwɪkli/", PartOfSpeech: "adv.", Example: "He finished his lunch quickly."},
		{ID: "j11", Text: "weather", Meaning: "天气", Phonetic: "/ˈweðə/", PartOfSpeech: "n.", Example: "The weather is fine today."},
		{ID: "j12", Text: "umbrella", Meaning: "雨伞", Phonetic: "/ʌmˈbrelə/", PartOfSpeech: "n.", Example: "Take an umbrella with you."},
	},
	JuniorPhrases: {
		{ID: "jp1", Text: "look after", Meaning: "照顾", Example: "She looks after her little brother."},
		{ID: "jp2", Text: "give up", Meaning: "放弃", Example: "Never give up your dreams."},
		{ID: "jp3", Text: "be good at", Meaning: "擅长", Example: "He is good at drawing."},
		{ID: "jp4", Text: "take part in", Meaning: "参加", Example: "We took part in the school sports meeting."},
		{ID: "jp5", Text: "get up", Meaning: "起床", Example: "I get up at six every day."},
		{ID: "jp6", Text: "a lot of", Meaning: "许多", Example: "There are a lot of books on the desk."},
		{ID: "jp7", Text: "be afraid of", Meaning: "害怕", Example: "My sister is afraid of dogs."},
		{ID: "jp8", Text: "come back", Meaning: "回来", Example: "Please come back before dark."},
		{ID: "jp9", Text: "put on", Meaning: "穿上", Example: "Put on your coat, it's cold."},
		{ID: "jp10", Text: "at last", Meaning: "最后；终于", Example: "At last we reached the top of the hill."},
	},
	Senior3500: {
		{ID: "s1", Text: "abandon", Meaning: "放弃；抛弃", Phonetic: "/əˈbændən/", PartOfSpeech: "v.", Example: "They had to abandon the car in the snow."},
		{ID: "s2", Text: "benefit", Meaning: "益处；受益", Phonetic: "/ˈbenɪfɪt/", PartOfSpeech: "n./v.", Example: "Regular exercise has many benefits."},
		{ID: "s3", Text: "consequence", Meaning: "后果", Phonetic: "/ˈkɒnsɪkwəns/", PartOfSpeech: "n.", Example: "You must accept the consequences of your actions."},
		{ID: "s4", Text: "determine", Meaning: "决定；确定", Phonetic: "/dɪˈtɜːmɪn/", PartOfSpeech: "v.", Example: "Your attitude determines your success."},
		{ID: "s5", Text: "efficient", Meaning: "高效的", Phonetic: "/ɪˈfɪʃnt/", PartOfSpeech: "adj.", Example: "This new machine is more efficient."},
		{ID: "s6", Text: "flexible", Meaning: "灵活的", Phonetic: "/ˈfleksəbl/", PartOfSpeech: "adj.", Example: "We offer flexible working hours."},
		{ID: "s7", Text: "guarantee", Meaning: "保证", Phonetic: "/ˌɡærənˈtiː/", PartOfSpeech: "v./n.", Example: "We guarantee delivery within a week."},
		{ID: "s8", Text: "inevitable", Meaning: "不可避免的", Phonetic: "/ɪnˈevɪtəbl/", PartOfSpeech: "adj.", Example: "Change is inevitable."},
		{ID: "s9", Text: "negotiate", Meaning: "谈判；协商", Phonetic: "/nɪˈɡəʊʃieɪt/", PartOfSpeech: "v.", Example: "The two sides agreed to negotiate."},
		{ID: "s10", Text: "precious", Meaning: "珍贵的", Phonetic: "/ˈpreʃəs/", PartOfSpeech: "adj.", Example: "Time is precious."},
		{ID: "s11", Text: "relevant", Meaning: "相关的", Phonetic: "/ˈreləvənt/", PartOfSpeech: "adj.", Example: "Keep only the relevant details."},
		{ID: "s12", Text: "sustain", Meaning: "维持；支撑", Phonetic: "/səˈsteɪn/", PartOfSpeech: "v.", Example: "The economy cannot sustain such growth."},
	},
	SeniorPhrases: {
		{ID: "sp1", Text: "account for", Meaning: "解释；占（比例）", Example: "Students account for 40% of the readers."},
		{ID: "sp2", Text: "be committed to", Meaning: "致力于", Example: "She is committed to protecting wildlife."},
		{ID: "sp3", Text: "in terms of", Meaning: "就……而言", Example: "In terms of price, this one is better."},
		{ID: "sp4", Text: "make a difference", Meaning: "有影响；起作用", Example: "Every small act can make a difference."},
		{ID: "sp5", Text: "on behalf of", Meaning: "代表", Example: "I speak on behalf of the whole class."},
		{ID: "sp6", Text: "put forward", Meaning: "提出", Example: "He put forward a new plan."},
		{ID: "sp7", Text: "take advantage of", Meaning: "利用", Example: "Take advantage of the holiday to read more."},
		{ID: "sp8", Text: "come up with", Meaning: "想出", Example: "She came up with a clever idea."},
		{ID: "sp9", Text: "in spite of", Meaning: "尽管", Example: "In spite of the rain, they went out."},
		{ID: "sp10", Text: "be absorbed in", Meaning: "专心于", Example: "He was absorbed in his book."},
	},
}

// BuiltinWords returns a copy of the built-in list for a course.
func BuiltinWords(course CourseID) []Word {
	src := builtinWords[course]
	out := make([]Word, len(src))
	copy(out, src)
	return out
}
