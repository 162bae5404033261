package mapping

import "strings"

// offlineDictionary is a built-in English to Portuguese medication name
// dictionary used when the remote terminology server is unreachable.
// It covers common hospital formulary entries only.
var offlineDictionary = map[string]string{
	"acetaminophen":  "paracetamol",
	"amoxicillin":    "amoxicilina",
	"ampicillin":     "ampicilina",
	"aspirin":        "ácido acetilsalicílico",
	"atenolol":       "atenolol",
	"azithromycin":   "azitromicina",
	"captopril":      "captopril",
	"cephalexin":     "cefalexina",
	"ciprofloxacin":  "ciprofloxacino",
	"clonazepam":     "clonazepam",
	"dipyrone":       "dipirona",
	"enalapril":      "enalapril",
	"furosemide":     "furosemida",
	"heparin":        "heparina",
	"hydrocortisone": "hidrocortisona",
	"ibuprofen":      "ibuprofeno",
	"insulin":        "insulina",
	"losartan":       "losartana",
	"metformin":      "metformina",
	"metoprolol":     "metoprolol",
	"metronidazole":  "metronidazol",
	"morphine":       "morfina",
	"omeprazole":     "omeprazol",
	"penicillin":     "penicilina",
	"prednisone":     "prednisona",
	"ranitidine":     "ranitidina",
	"simvastatin":    "sinvastatina",
	"tramadol":       "tramadol",
	"vancomycin":     "vancomicina",
	"warfarin":       "varfarina",
}

// searchOffline matches the term as a substring against both languages
// of the built-in dictionary.
func searchOffline(term string) []SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var results []SearchResult
	for en, pt := range offlineDictionary {
		if strings.Contains(en, term) || strings.Contains(strings.ToLower(pt), term) {
			results = append(results, SearchResult{
				EnglishName:    en,
				PortugueseName: pt,
				Source:         "offline",
			})
		}
	}
	return results
}
