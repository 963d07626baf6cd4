package model

// Question banks for the scored assessments. Question numbers are 1-based and
// stable: persisted answers and the question→category tables depend on them.

// DISC letters
const (
	DISCDominance         = "D"
	DISCInfluence         = "I"
	DISCSteadiness        = "S"
	DISCConscientiousness = "C"
)

// DISCLetters in canonical order
var DISCLetters = []string{DISCDominance, DISCInfluence, DISCSteadiness, DISCConscientiousness}

// DISCWord is one word of a DISC group tagged with the letter it scores
type DISCWord struct {
	Word   string `json:"word"`
	Letter string `json:"-"`
}

// DISCWordGroup is a forced-choice group of four words, one per letter
type DISCWordGroup struct {
	Number int        `json:"number"`
	Words  []DISCWord `json:"words"`
}

// discGroup builds group n. Words are served in a fixed shuffled order
// seeded by the group number, so a word's position says nothing about its
// letter.
func discGroup(n int, d, i, s, c string) DISCWordGroup {
	words := []DISCWord{
		{Word: d, Letter: DISCDominance},
		{Word: i, Letter: DISCInfluence},
		{Word: s, Letter: DISCSteadiness},
		{Word: c, Letter: DISCConscientiousness},
	}

	seed := uint32(n) * 2654435761
	for k := len(words) - 1; k > 0; k-- {
		seed = seed*1664525 + 1013904223
		j := int(seed>>16) % (k + 1)
		words[k], words[j] = words[j], words[k]
	}

	return DISCWordGroup{Number: n, Words: words}
}

// DISCWordGroups are the 28 personality word groups
var DISCWordGroups = []DISCWordGroup{
	discGroup(1, "Rápido", "Entusiasta", "Apacible", "Lógico"),
	discGroup(2, "Decidido", "Sociable", "Paciente", "Preciso"),
	discGroup(3, "Audaz", "Persuasivo", "Leal", "Cuidadoso"),
	discGroup(4, "Competitivo", "Animado", "Tranquilo", "Ordenado"),
	discGroup(5, "Directo", "Expresivo", "Constante", "Analítico"),
	discGroup(6, "Firme", "Optimista", "Amable", "Detallista"),
	discGroup(7, "Independiente", "Carismático", "Comprensivo", "Disciplinado"),
	discGroup(8, "Exigente", "Alegre", "Servicial", "Perfeccionista"),
	discGroup(9, "Valiente", "Inspirador", "Sereno", "Metódico"),
	discGroup(10, "Enérgico", "Espontáneo", "Confiable", "Reservado"),
	discGroup(11, "Determinado", "Encantador", "Considerado", "Exacto"),
	discGroup(12, "Arriesgado", "Divertido", "Estable", "Prudente"),
	discGroup(13, "Dominante", "Popular", "Cooperador", "Sistemático"),
	discGroup(14, "Resuelto", "Hablador", "Complaciente", "Reflexivo"),
	discGroup(15, "Emprendedor", "Extrovertido", "Modesto", "Diplomático"),
	discGroup(16, "Insistente", "Convincente", "Gentil", "Correcto"),
	discGroup(17, "Atrevido", "Vivaz", "Calmado", "Organizado"),
	discGroup(18, "Autoritario", "Cordial", "Fiel", "Meticuloso"),
	discGroup(19, "Tenaz", "Simpático", "Dulce", "Cauteloso"),
	discGroup(20, "Osado", "Efusivo", "Tolerante", "Formal"),
	discGroup(21, "Aventurero", "Jovial", "Humilde", "Respetuoso"),
	discGroup(22, "Líder", "Comunicativo", "Pacífico", "Minucioso"),
	discGroup(23, "Ambicioso", "Festivo", "Sensible", "Crítico"),
	discGroup(24, "Fuerte", "Impulsivo", "Equilibrado", "Riguroso"),
	discGroup(25, "Productivo", "Influyente", "Moderado", "Conservador"),
	discGroup(26, "Práctico", "Motivador", "Adaptable", "Objetivo"),
	discGroup(27, "Seguro", "Sonriente", "Atento", "Exhaustivo"),
	discGroup(28, "Desafiante", "Entretenido", "Afable", "Escrupuloso"),
}

// DISCLetterFor returns the letter of word within group n
func DISCLetterFor(group int, word string) (string, bool) {
	if group < 1 || group > len(DISCWordGroups) {
		return "", false
	}
	for _, w := range DISCWordGroups[group-1].Words {
		if w.Word == word {
			return w.Letter, true
		}
	}
	return "", false
}

// Spiritual gift keys
const (
	GiftAdministracion = "administracion"
	GiftArtesania      = "artesania"
	GiftDiscernimiento = "discernimiento"
	GiftEvangelismo    = "evangelismo"
	GiftExhortacion    = "exhortacion"
	GiftFe             = "fe"
	GiftDar            = "dar"
	GiftHospitalidad   = "hospitalidad"
	GiftIntercesion    = "intercesion"
	GiftConocimiento   = "conocimiento"
	GiftLiderazgo      = "liderazgo"
	GiftMisericordia   = "misericordia"
	GiftPastoreo       = "pastoreo"
	GiftServicio       = "servicio"
	GiftEnsenanza      = "ensenanza"
	GiftSabiduria      = "sabiduria"
)

// GiftKeys in question-table order
var GiftKeys = []string{
	GiftAdministracion, GiftArtesania, GiftDiscernimiento, GiftEvangelismo,
	GiftExhortacion, GiftFe, GiftDar, GiftHospitalidad,
	GiftIntercesion, GiftConocimiento, GiftLiderazgo, GiftMisericordia,
	GiftPastoreo, GiftServicio, GiftEnsenanza, GiftSabiduria,
}

// GiftLabels maps gift keys to display names
var GiftLabels = map[string]string{
	GiftAdministracion: "Administración",
	GiftArtesania:      "Artesanía",
	GiftDiscernimiento: "Discernimiento",
	GiftEvangelismo:    "Evangelismo",
	GiftExhortacion:    "Exhortación",
	GiftFe:             "Fe",
	GiftDar:            "Dar",
	GiftHospitalidad:   "Hospitalidad",
	GiftIntercesion:    "Intercesión",
	GiftConocimiento:   "Conocimiento",
	GiftLiderazgo:      "Liderazgo",
	GiftMisericordia:   "Misericordia",
	GiftPastoreo:       "Pastoreo",
	GiftServicio:       "Servicio",
	GiftEnsenanza:      "Enseñanza",
	GiftSabiduria:      "Sabiduría",
}

// QuestionsPerCategory is the number of Likert questions feeding each gift or skill
const QuestionsPerCategory = 7

const (
	GiftQuestionCount  = 112
	SkillQuestionCount = 42
)

// GiftForQuestion returns the gift scored by question q (1-112)
func GiftForQuestion(q int) (string, bool) {
	if q < 1 || q > GiftQuestionCount {
		return "", false
	}
	return GiftKeys[(q-1)%len(GiftKeys)], true
}

// RIASEC letters
const (
	SkillRealistic     = "R"
	SkillInvestigative = "I"
	SkillArtistic      = "A"
	SkillSocial        = "S"
	SkillEnterprising  = "E"
	SkillConventional  = "C"
)

// SkillLetters in question-table order
var SkillLetters = []string{
	SkillRealistic, SkillInvestigative, SkillArtistic,
	SkillSocial, SkillEnterprising, SkillConventional,
}

// SkillLabels maps RIASEC letters to display names
var SkillLabels = map[string]string{
	SkillRealistic:     "Realista",
	SkillInvestigative: "Investigador",
	SkillArtistic:      "Artístico",
	SkillSocial:        "Social",
	SkillEnterprising:  "Emprendedor",
	SkillConventional:  "Convencional",
}

// SkillForQuestion returns the RIASEC letter scored by question q (1-42)
func SkillForQuestion(q int) (string, bool) {
	if q < 1 || q > SkillQuestionCount {
		return "", false
	}
	return SkillLetters[(q-1)%len(SkillLetters)], true
}

// giftStatements holds the seven statements per gift; statement i of a gift
// is question i*16 + position + 1
var giftStatements = map[string][QuestionsPerCategory]string{
	GiftAdministracion: {
		"Disfruto organizar personas y recursos para alcanzar una meta.",
		"Puedo ver los pasos necesarios para completar un proyecto.",
		"Me gusta crear planes y calendarios para el equipo.",
		"Delego tareas con facilidad a las personas adecuadas.",
		"Me frustra ver desorden en un ministerio.",
		"Otros me piden ayuda para coordinar eventos.",
		"Me siento realizado cuando un proyecto funciona sin problemas.",
	},
	GiftArtesania: {
		"Disfruto trabajar con mis manos para construir o reparar.",
		"Me gusta diseñar objetos útiles para la iglesia.",
		"Puedo ver cómo mejorar un espacio físico.",
		"Disfruto proyectos de carpintería, costura o decoración.",
		"Me satisface ver terminado algo que hice.",
		"Otros buscan mi ayuda para arreglar cosas.",
		"Sirvo a Dios mediante mis habilidades manuales.",
	},
	GiftDiscernimiento: {
		"Percibo con facilidad si una enseñanza es verdadera o falsa.",
		"Puedo notar motivaciones ocultas en las personas.",
		"Distingo entre lo que viene de Dios y lo que no.",
		"Me inquieta cuando algo no parece correcto espiritualmente.",
		"Otros me consultan para evaluar situaciones.",
		"Reconozco rápidamente la manipulación.",
		"Mis impresiones sobre las personas suelen ser acertadas.",
	},
	GiftEvangelismo: {
		"Disfruto hablar de mi fe con personas no creyentes.",
		"Busco oportunidades para compartir el evangelio.",
		"Me resulta natural iniciar conversaciones espirituales.",
		"He guiado a otras personas a Cristo.",
		"Me importa profundamente quienes no conocen a Dios.",
		"Me siento cómodo explicando el plan de salvación.",
		"Invito a otros a la iglesia con frecuencia.",
	},
	GiftExhortacion: {
		"Animo a las personas que están desanimadas.",
		"Sé motivar a otros a crecer en su fe.",
		"Las personas se sienten fortalecidas después de hablar conmigo.",
		"Me gusta aconsejar con pasos prácticos.",
		"Veo el potencial en otros y se lo digo.",
		"Disfruto acompañar a alguien en su crecimiento.",
		"Uso la Escritura para consolar y desafiar.",
	},
	GiftFe: {
		"Confío en Dios aun cuando la situación parece imposible.",
		"Creo que Dios cumplirá sus promesas sin dudar.",
		"Me atrevo a emprender proyectos que requieren fe.",
		"Otros se inspiran en mi confianza en Dios.",
		"Oro por cosas grandes esperando respuesta.",
		"Mantengo la esperanza en tiempos difíciles.",
		"Veo la mano de Dios en las circunstancias.",
	},
	GiftDar: {
		"Disfruto dar generosamente para la obra de Dios.",
		"Administro mis recursos para poder dar más.",
		"Me alegra suplir necesidades materiales de otros.",
		"Doy con gozo y sin buscar reconocimiento.",
		"Percibo necesidades financieras que otros no ven.",
		"Considero mis bienes como de Dios.",
		"Busco maneras creativas de apoyar ministerios.",
	},
	GiftHospitalidad: {
		"Disfruto recibir personas en mi casa.",
		"Hago sentir bienvenidos a los visitantes.",
		"Me gusta preparar comidas para otros.",
		"Busco a quienes están solos en la iglesia.",
		"Creo ambientes cálidos y acogedores.",
		"Los nuevos se acercan a mí con facilidad.",
		"Me gusta organizar reuniones en casa.",
	},
	GiftIntercesion: {
		"Oro por otros durante largos períodos.",
		"Siento la carga de orar por necesidades específicas.",
		"Llevo una lista de peticiones de oración.",
		"He visto respuestas claras a mis oraciones.",
		"Disfruto las reuniones de oración.",
		"Las personas me piden que ore por ellas.",
		"La oración es mi primera respuesta ante un problema.",
	},
	GiftConocimiento: {
		"Disfruto estudiar la Biblia a profundidad.",
		"Me gusta investigar temas teológicos.",
		"Recuerdo con facilidad pasajes y datos bíblicos.",
		"Otros me consultan sobre doctrina.",
		"Leo libros cristianos con regularidad.",
		"Comprendo ideas complejas de la Escritura.",
		"Me gusta compartir lo que he aprendido.",
	},
	GiftLiderazgo: {
		"Las personas me siguen con naturalidad.",
		"Puedo comunicar una visión clara.",
		"Tomo decisiones difíciles cuando es necesario.",
		"Inspiro a otros a trabajar juntos.",
		"Asumo responsabilidad cuando nadie más lo hace.",
		"Sé motivar a un grupo hacia una meta.",
		"Me gusta desarrollar nuevos líderes.",
	},
	GiftMisericordia: {
		"Siento compasión profunda por quienes sufren.",
		"Me gusta visitar a enfermos y necesitados.",
		"Actúo para aliviar el dolor de otros.",
		"Las personas heridas se sienten cómodas conmigo.",
		"Me conmueve la injusticia.",
		"Paso tiempo con los marginados.",
		"Escucho con paciencia a quien está sufriendo.",
	},
	GiftPastoreo: {
		"Me gusta cuidar el crecimiento espiritual de un grupo.",
		"Doy seguimiento a personas a lo largo del tiempo.",
		"Me preocupa cuando alguien deja de asistir.",
		"Disfruto guiar a un grupo pequeño.",
		"Protejo a otros de enseñanzas dañinas.",
		"Las personas acuden a mí por consejo espiritual.",
		"Me comprometo con las personas a largo plazo.",
	},
	GiftServicio: {
		"Disfruto ayudar en tareas prácticas.",
		"Veo lo que hace falta y lo hago.",
		"Prefiero servir detrás de escena.",
		"Me gusta apoyar a los líderes en su trabajo.",
		"No necesito reconocimiento para servir.",
		"Me ofrezco como voluntario con frecuencia.",
		"Me siento útil cuando resuelvo necesidades concretas.",
	},
	GiftEnsenanza: {
		"Disfruto explicar la Biblia a otros.",
		"Preparo lecciones con cuidado.",
		"Las personas entienden mejor cuando yo explico.",
		"Me gusta ver a otros aprender y aplicar.",
		"Organizo ideas de forma clara.",
		"Busco ilustraciones para hacer comprensible la verdad.",
		"Me motiva corregir malentendidos doctrinales.",
	},
	GiftSabiduria: {
		"Sé aplicar principios bíblicos a situaciones concretas.",
		"Otros buscan mi consejo para decisiones importantes.",
		"Encuentro soluciones prácticas a problemas complejos.",
		"Veo las consecuencias de las decisiones a largo plazo.",
		"Mis consejos suelen resultar acertados.",
		"Equilibro verdad y gracia al aconsejar.",
		"Ayudo a resolver conflictos con prudencia.",
	},
}

// skillStatements holds the seven activities per RIASEC letter
var skillStatements = map[string][QuestionsPerCategory]string{
	SkillRealistic: {
		"Reparar equipos o aparatos.",
		"Trabajar al aire libre.",
		"Armar o construir muebles.",
		"Operar herramientas o maquinaria.",
		"Instalar equipo de sonido o iluminación.",
		"Cocinar para grupos grandes.",
		"Dar mantenimiento a edificios.",
	},
	SkillInvestigative: {
		"Investigar un tema a fondo.",
		"Resolver problemas complejos.",
		"Analizar datos o estadísticas.",
		"Leer material técnico o científico.",
		"Hacer preguntas para entender cómo funciona algo.",
		"Evaluar la efectividad de un programa.",
		"Trabajar con computadoras y sistemas.",
	},
	SkillArtistic: {
		"Cantar o tocar un instrumento.",
		"Diseñar material gráfico.",
		"Escribir textos creativos.",
		"Decorar espacios.",
		"Actuar o participar en dramas.",
		"Tomar fotografías o grabar video.",
		"Crear ideas originales para eventos.",
	},
	SkillSocial: {
		"Enseñar a otras personas.",
		"Escuchar y aconsejar.",
		"Cuidar niños.",
		"Recibir a visitantes.",
		"Trabajar en equipo.",
		"Ayudar a personas con necesidades.",
		"Facilitar conversaciones en grupo.",
	},
	SkillEnterprising: {
		"Dirigir un proyecto.",
		"Convencer a otros de una idea.",
		"Hablar en público.",
		"Recaudar fondos.",
		"Iniciar un nuevo ministerio.",
		"Negociar acuerdos.",
		"Representar al grupo ante otros.",
	},
	SkillConventional: {
		"Llevar registros ordenados.",
		"Manejar presupuestos.",
		"Organizar archivos.",
		"Seguir procedimientos establecidos.",
		"Preparar informes.",
		"Coordinar horarios.",
		"Revisar documentos en busca de errores.",
	},
}

// LikertQuestion is a single rated statement
type LikertQuestion struct {
	Number   int    `json:"number"`
	Text     string `json:"text"`
	Category string `json:"-"`
}

// GiftQuestions returns the 112 gift statements in question order
func GiftQuestions() []LikertQuestion {
	return likertQuestions(GiftKeys, giftStatements)
}

// SkillQuestions returns the 42 skill activities in question order
func SkillQuestions() []LikertQuestion {
	return likertQuestions(SkillLetters, skillStatements)
}

func likertQuestions(keys []string, statements map[string][QuestionsPerCategory]string) []LikertQuestion {
	questions := make([]LikertQuestion, 0, len(keys)*QuestionsPerCategory)
	for round := 0; round < QuestionsPerCategory; round++ {
		for _, key := range keys {
			questions = append(questions, LikertQuestion{
				Number:   len(questions) + 1,
				Text:     statements[key][round],
				Category: key,
			})
		}
	}
	return questions
}

// PassionGroups are the people groups offered in step one of the passion assessment
var PassionGroups = []string{
	"Children",
	"Youth",
	"Young Adults",
	"Seniors",
	"Families",
	"Married Couples",
	"Singles",
	"Single Parents",
	"Women",
	"Men",
	"The Poor",
	"The Homeless",
	"Immigrants",
	"Prisoners",
	"Addicts",
	"The Sick",
	"People with Disabilities",
	"Widows",
	"Orphans",
	"Unbelievers",
	"New Believers",
	"Unreached Peoples",
	"Artists",
	"Students",
}

// PassionTypes are the ways of expressing a passion offered in step three
var PassionTypes = []string{
	"Teaching",
	"Serving",
	"Counseling",
	"Organizing",
	"Creating",
	"Encouraging",
	"Praying",
	"Leading",
	"Giving",
	"Building",
	"Caring",
	"Evangelizing",
	"Worshiping",
	"Advocating",
}

// ExperienceTypes are the categories offered in the experience survey
var ExperienceTypes = []string{
	"Spiritual",
	"Painful",
	"Educational",
	"Ministry",
	"Professional",
	"Family",
	"Cross-cultural",
	"Leadership",
}

// ExperienceEvents are the life events offered for the significant, positive
// and painful experience lists. Ministries name their relevant experiences
// from the same list so the two can be compared.
var ExperienceEvents = []string{
	// Spiritual journey
	"Baptism",
	"Conversion",
	"Discipleship",
	"Mentoring",
	"Mission trip",
	"Church planting",
	"Cross-cultural living",
	"Leading a group",
	// Family
	"Marriage",
	"Parenting",
	"Caregiving",
	// Training and work
	"Teaching",
	"Music training",
	"Audio engineering",
	"Video editing",
	"Accounting",
	"Business owner",
	"Construction",
	"Trades",
	"Social work",
	// Hardship
	"Illness",
	"Loss of a loved one",
	"Divorce",
	"Financial hardship",
	"Overcoming addiction",
}

// Contains reports whether value is one of options
func Contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
