package dialogue

import (
	"fmt"
	"strings"

	"salonbot/models"
)

// Messages renders the fixed-locale (Croatian) dialogue text for one business.
type Messages struct {
	cfg models.BusinessConfig
}

func NewMessages(cfg models.BusinessConfig) Messages {
	return Messages{cfg: cfg}
}

func (m Messages) Greeting() string {
	return "Pozdrav! 👋 Dobrodošli u sustav rezervacija.\n\n" +
		"Za rezervaciju termina napišite \"rezervacija\" ili \"termin\".\n" +
		"Za radno vrijeme napišite \"radno vrijeme\"."
}

func (m Messages) Help() string {
	return "Za rezervaciju termina napišite \"rezervacija\" ili \"termin\".\n" +
		"Za informacije o radnom vremenu napišite \"radno vrijeme\"."
}

func (m Messages) Hours() string {
	return fmt.Sprintf("Naše radno vrijeme je %s, radnim danima i subotom.", m.cfg.WorkingHours)
}

func (m Messages) HoursAfterBooking() string {
	return m.Hours() + "\n\nZa novu rezervaciju napišite \"rezervacija\"."
}

func (m Messages) ServiceMenu() string {
	return fmt.Sprintf("Odlično! Nudimo sljedeće usluge:\n\n%s\n\nOdaberite broj usluge (1-%d) ili napišite naziv:",
		numbered(m.cfg.Services), len(m.cfg.Services))
}

func (m Messages) NewBookingMenu() string {
	return fmt.Sprintf("Nova rezervacija!\n\nNudimo sljedeće usluge:\n\n%s\n\nOdaberite broj usluge (1-%d):",
		numbered(m.cfg.Services), len(m.cfg.Services))
}

func (m Messages) InvalidService() string {
	return fmt.Sprintf("Molim vas odaberite broj usluge (1-%d) ili napišite naziv usluge iz liste.", len(m.cfg.Services))
}

func (m Messages) DatePrompt(service string) string {
	return fmt.Sprintf("✅ Odabrali ste: %s\n\nZa koji datum želite rezervirati termin?\n(npr. 15.12.2024 ili \"sutra\")", service)
}

func (m Messages) InvalidDate() string {
	return "Molim unesite datum u formatu DD.MM.YYYY (npr. 15.12.2024) ili napišite \"sutra\"."
}

func (m Messages) SlotMenu(date string) string {
	return fmt.Sprintf("✅ Datum: %s\n\nDostupni termini:\n\n%s\n\nOdaberite broj (1-%d) ili napišite vrijeme:",
		date, numbered(m.cfg.TimeSlots), len(m.cfg.TimeSlots))
}

func (m Messages) InvalidTime() string {
	return fmt.Sprintf("Molim odaberite broj termina (1-%d) ili napišite vrijeme (npr. 14:00).", len(m.cfg.TimeSlots))
}

func (m Messages) NamePrompt(slot string) string {
	return fmt.Sprintf("✅ Vrijeme: %s\n\nKako se zovete?", slot)
}

func (m Messages) InvalidName() string {
	return "Molim unesite vaše ime (najmanje 2 znaka)."
}

func (m Messages) PhonePrompt(name string) string {
	return fmt.Sprintf("✅ Ime: %s\n\nMolim vas unesite vaš broj telefona:", name)
}

func (m Messages) InvalidPhone() string {
	return "Molim unesite ispravan broj telefona (samo brojevi, najmanje 9 znamenki)."
}

// Summary lists the whole draft and asks for a yes/no answer.
func (m Messages) Summary(d models.BookingDraft) string {
	var b strings.Builder
	b.WriteString("✅ PREGLED REZERVACIJE:\n\n")
	fmt.Fprintf(&b, "🏪 %s\n", m.cfg.Name)
	fmt.Fprintf(&b, "💇 Usluga: %s\n", d.Service)
	fmt.Fprintf(&b, "📅 Datum: %s\n", d.Date)
	fmt.Fprintf(&b, "🕐 Vrijeme: %s\n", d.Time)
	fmt.Fprintf(&b, "👤 Ime: %s\n", d.Name)
	fmt.Fprintf(&b, "📞 Telefon: %s\n\n", d.Phone)
	b.WriteString("➡️ Potvrdite rezervaciju:\nNapišite \"DA\" za potvrdu ili \"NE\" za odustajanje")
	return b.String()
}

func (m Messages) InvalidConfirmation() string {
	return "Molim odgovorite sa \"DA\" za potvrdu ili \"NE\" za odustajanje."
}

func (m Messages) Confirmed() string {
	return "🎉 REZERVACIJA USPJEŠNO POTVRĐENA!\n\n" +
		"✅ Dobit ćete SMS potvrdu na uneseni broj.\n" +
		"✅ Ako trebate otkazati, javite se najmanje 24h prije.\n\n" +
		"Hvala što koristite naše usluge!\n\n" +
		"➡️ Za novu rezervaciju napišite \"rezervacija\""
}

func (m Messages) Cancelled() string {
	return "❌ Rezervacija je otkazana.\n\nZa novu rezervaciju napišite \"rezervacija\"."
}

func (m Messages) CompletedHelp() string {
	return "Za novu rezervaciju napišite \"rezervacija\" ili \"termin\"."
}

func (m Messages) InvalidStep() string {
	return "Došlo je do greške. Napišite \"rezervacija\" za ponovni početak."
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}
