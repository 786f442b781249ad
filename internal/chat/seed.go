package chat

// SeedStore builds the default campus corpus. The store stays injectable so
// tests can substitute a fixture without touching shared state.
func SeedStore() *Store {
	store := NewStore()
	store.Add(
		"Admissions open in June every year. Applications are submitted online through the portal and require the class 12 marksheet, a transfer certificate and two passport photographs.",
		LanguageEnglish, "admission",
	)
	store.Add(
		"The annual tuition fee for the B.Tech program is INR 98,000, payable in two installments. A late payment surcharge of INR 500 per week applies after the due date.",
		LanguageEnglish, "fees",
	)
	store.Add(
		"The central library is open from 8 AM to 8 PM on working days, and reading hours extend to 10 PM during the exam season. Entry requires a valid student ID card.",
		LanguageEnglish, "library-rules",
	)
	store.Add(
		"Hostel accommodation is available on campus for both boys and girls with two-seater and three-seater rooms. The mess serves vegetarian meals and the annual hostel fee is INR 65,000.",
		LanguageEnglish, "hostel",
	)
	store.Add(
		"The placement cell invites companies from September onwards. Last year over 80 percent of final-year students received offers, with the highest package at 24 LPA.",
		LanguageEnglish, "placements",
	)
	store.Add(
		"Campus facilities include free Wi-Fi in all academic blocks, a 400-meter sports track, an auditorium seating 1,200 and a medical room with a resident nurse.",
		LanguageEnglish, "facilities",
	)
	store.Add(
		"Merit scholarships cover 50 percent of tuition for students scoring above 90 percent in the qualifying exam. Separate scholarships exist for sports quota admissions.",
		LanguageEnglish, "scholarship",
	)
	store.Add(
		"प्रवेश प्रक्रिया हर साल जून में शुरू होती है। आवेदन पोर्टल पर ऑनलाइन जमा करें और कक्षा 12 की अंकतालिका साथ रखें।",
		LanguageHindi, "admission",
	)
	store.Add(
		"बी.टेक की वार्षिक फीस 98,000 रुपये है और इसे दो किस्तों में जमा किया जा सकता है। छात्रवृत्ति के लिए अलग से आवेदन करें।",
		LanguageHindi, "fees",
	)
	store.Add(
		"पुस्तकालय कार्यदिवसों में सुबह 8 बजे से रात 8 बजे तक खुला रहता है। परीक्षा के समय यह रात 10 बजे तक खुला रहता है।",
		LanguageHindi, "library-rules",
	)
	store.Add(
		"छात्रावास में दो और तीन सीट वाले कमरे मिलते हैं और मेस में शाकाहारी भोजन मिलता है।",
		LanguageHindi, "hostel",
	)
	store.Add(
		"प्रवेश री प्रक्रिया जून में सरू होवै। आवेदन पोर्टल माथै ऑनलाइन भरो अर कक्षा 12 री अंकतालिका साथ राखो।",
		LanguageRajasthani, "admission",
	)
	store.Add(
		"पुस्तकालय काम रा दिनां में सवेरै 8 बजे सूं रात 8 बजे तांई खुलो रैवै। विद्यार्थी कार्ड साथ लावणो जरूरी है।",
		LanguageRajasthani, "library-rules",
	)
	return store
}
