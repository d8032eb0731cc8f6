package domain

import (
	"fmt"
	"strings"
)

// Topic identifies which canned answer a question maps to.
type Topic string

const (
	TopicCreationTime Topic = "creation_time"
	TopicAttribution  Topic = "attribution"
	TopicDiscovery    Topic = "discovery"
	TopicWhereNow     Topic = "where_now"
	TopicDamage       Topic = "damage"
	TopicMaterial     Topic = "material"
	TopicMeaning      Topic = "meaning"
	TopicSize         Topic = "size"
	TopicPeriod       Topic = "period"
	TopicTechnique    Topic = "technique"
	TopicThanks       Topic = "thanks"
	TopicGreeting     Topic = "greeting"
	TopicFallback     Topic = "fallback"
)

// question is a lowercased visitor question with keyword helpers.
type question string

func (q question) has(words ...string) bool {
	for _, w := range words {
		if strings.Contains(string(q), w) {
			return true
		}
	}
	return false
}

func (q question) asksWhen() bool    { return q.has("when", "wann") }
func (q question) asksWho() bool     { return q.has("who", "wer") }
func (q question) asksWhere() bool   { return q.has("where", "wo") }
func (q question) mentionsNow() bool { return q.has("now", "located", "see", "jetzt", "heute", "stehen", "ansehen") }
func (q question) mentionsArtist() bool {
	return q.has("artist", "künstler")
}

func (q question) mentionsCreated() bool {
	return q.has("created", "made", "built", "geschaffen", "erschaffen", "gebaut")
}

func (q question) mentionsFound() bool {
	return q.has("found", "discovered", "gefunden", "entdeckt")
}

func (q question) mentionsDamage() bool {
	return q.has("damage", "missing", "broken", "arm", "head", "schaden", "schäden", "beschädigt", "fehl", "kopf")
}

func (q question) mentionsMaterial() bool {
	return q.has("material", "made of", "marble", "bronze", "woraus", "marmor", "aus welchem")
}

func (q question) mentionsMeaning() bool {
	return q.has("meaning", "represent", "symbolize", "bedeut", "symbol")
}

func (q question) mentionsSize() bool {
	return q.has("size", "big", "tall", "height", "groß", "gross", "höhe", "hoch")
}

func (q question) mentionsPeriod() bool {
	return q.has("period", "era", "time", "epoche", "zeit")
}

func (q question) mentionsTechnique() bool {
	return q.has("technique", "technik", "angefertigt") ||
		(q.has("how") && q.has("made")) ||
		(q.has("wie") && q.has("gemacht"))
}

func (q question) isThanks() bool { return q.has("thank", "danke") }

func (q question) isGreeting() bool {
	return q.has("hello", "hi ", "hey", "hallo", "servus", "moin") ||
		strings.HasPrefix(string(q), "hi")
}

// Classify maps a question to the first matching topic. The order is
// significant: earlier topics win over later ones.
func Classify(text string, statue *Statue) Topic {
	q := question(strings.ToLower(text))

	switch {
	case q.asksWhen() && q.mentionsCreated():
		return TopicCreationTime
	case q.asksWho() && (q.mentionsCreated() || q.mentionsArtist()):
		return TopicAttribution
	case q.asksWhere() && q.mentionsFound():
		return TopicDiscovery
	case q.asksWhere() && q.mentionsNow():
		return TopicWhereNow
	case statue.HasDamages() && q.mentionsDamage():
		return TopicDamage
	case q.mentionsMaterial():
		return TopicMaterial
	case q.mentionsMeaning():
		return TopicMeaning
	case q.mentionsSize():
		return TopicSize
	case q.mentionsPeriod():
		return TopicPeriod
	case q.mentionsTechnique():
		return TopicTechnique
	case q.isThanks():
		return TopicThanks
	case q.isGreeting():
		return TopicGreeting
	default:
		return TopicFallback
	}
}

// Respond answers a visitor question in the voice of the statue.
// It never fails and is a pure function of its inputs.
func Respond(text string, statue *Statue) string {
	if statue == nil {
		return "Ich kann dir gerade nichts erzählen. Scanne zuerst eine Statue!"
	}

	epoch := statue.EpochName()

	switch Classify(text, statue) {
	case TopicCreationTime:
		return fmt.Sprintf("Ich entstand in der Epoche %s, genauer gesagt %s. Es war eine bemerkenswerte Zeit für die Bildhauerei!",
			epoch, statue.Year)

	case TopicAttribution:
		return fmt.Sprintf("Geschaffen wurde ich von %s, einer prägenden Persönlichkeit der Epoche %s. Ihr Können hat mich zum Leben erweckt.",
			statue.Creator(), epoch)

	case TopicDiscovery:
		return fmt.Sprintf("Gefunden wurde ich in %s. Über meinen Info-Bereich kannst du den Ort direkt auf der Karte ansehen.",
			statue.FoundLocation)

	case TopicWhereNow:
		return fmt.Sprintf("Heute findest du mich hier: %s. Dort werde ich bewahrt, damit Menschen aus aller Welt mich bestaunen können.",
			statue.Location)

	case TopicDamage:
		parts := make([]string, 0, len(statue.Damages))
		for _, d := range statue.Damages {
			parts = append(parts, strings.ToLower(d.Part))
		}
		return fmt.Sprintf("Im Laufe der Jahrhunderte habe ich meine %s verloren. %s Trotzdem gelte ich weiterhin als Meisterwerk!",
			strings.Join(parts, " und "), statue.Damages[0].Description)

	case TopicMaterial:
		return fmt.Sprintf("Ich bin aus Marmor gearbeitet, einem in der Epoche %s besonders geschätzten Material. Der Stein wurde sorgfältig ausgewählt und mit großer Präzision geformt.",
			epoch)

	case TopicMeaning:
		return statue.Description + " Ich stehe nicht nur für künstlerisches Können, sondern auch für die Werte und Vorstellungen meiner Zeit."

	case TopicSize:
		if statue.ID == "david" {
			return "Ich bin beeindruckende 5,17 Meter groß! Ich wurde aus einem einzigen Marmorblock gehauen, was meine Maße noch außergewöhnlicher macht."
		}
		return fmt.Sprintf("Ich habe Lebensgröße und wurde nach den Gestaltungsprinzipien der Epoche %s sorgfältig proportioniert.", epoch)

	case TopicPeriod:
		return fmt.Sprintf("Ich entstamme der Epoche %s und wurde %s geschaffen. Diese Zeit brachte bedeutende Entwicklungen in der Kunstgeschichte mit sich.",
			epoch, statue.Year)

	case TopicTechnique:
		return fmt.Sprintf("Ich entstand mit den traditionellen Bildhauertechniken der Epoche %s. %s nutzte Meißel, Spitzeisen und viel Planung, um den Rohstein in meine heutige Form zu bringen.",
			epoch, statue.Creator())

	case TopicThanks:
		return "Sehr gern! Es freut mich, meine Geschichte mit dir zu teilen. Frag ruhig weiter!"

	case TopicGreeting:
		return "Willkommen! Schön, dass du mehr über mich erfahren möchtest. Was interessiert dich?"

	default:
		return fmt.Sprintf("Spannende Frage zu %s! Hier ein erster Einblick: %s. Möchtest du etwas Bestimmtes über meine Entstehung, Geschichte oder Bedeutung erfahren?",
			statue.Name, firstSentence(statue.Description))
	}
}

// firstSentence returns the text up to (not including) the first period.
func firstSentence(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// Greeting is the opening line of a chat with the statue.
func Greeting(statue *Statue) string {
	return fmt.Sprintf("Hallo! Ich bin %s, geschaffen von %s. Frag mich gern nach meiner Geschichte, Entstehung oder kulturellen Bedeutung!",
		statue.Name, statue.Creator())
}

// QuickQuestions are the suggested questions shown under the chat.
func QuickQuestions() []string {
	return []string{
		"Wann wurdest du geschaffen?",
		"Wer hat dich erschaffen?",
		"Wo wurdest du gefunden?",
		"Erzähl mir von deinen Schäden",
	}
}
