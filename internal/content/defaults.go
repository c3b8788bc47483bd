package content

// Built-in training material, written to the content directory on first run.
// 13 lessons, 15 quiz questions, 15 checklist items.

func DefaultLessons() []Lesson {
	return []Lesson{
		{
			Title:   "Privacy Rule Basics",
			Content: "The HIPAA Privacy Rule establishes national standards to protect individuals' medical records and other personal health information (PHI). It applies to health plans, healthcare clearinghouses, and healthcare providers. The rule requires appropriate safeguards to protect privacy and sets limits on uses and disclosures without patient authorization.",
			KeyPoints: []string{
				"Protects all individually identifiable health information",
				"Requires written patient authorization for most disclosures",
				"Patients have right to access their own health information",
				"Minimum necessary standard must be applied",
			},
			ComprehensionQuestions: []ComprehensionQuestion{
				{
					Question: "What does the Privacy Rule primarily protect?",
					Options: []string{
						"Financial information",
						"Medical records and PHI",
						"Employee records",
						"Business contracts",
					},
					CorrectIndex: 1,
				},
			},
		},
		{
			Title:   "Security Rule Requirements",
			Content: "The HIPAA Security Rule protects electronic protected health information (ePHI) through administrative, physical, and technical safeguards. Administrative safeguards include security management processes and workforce training. Physical safeguards control facility access and workstation use. Technical safeguards involve access controls, audit controls, and transmission security.",
			KeyPoints: []string{
				"Applies specifically to electronic PHI (ePHI)",
				"Requires risk analysis and risk management",
				"Encryption strongly recommended for data at rest and in transit",
				"Regular security training required for all staff",
			},
			ComprehensionQuestions: []ComprehensionQuestion{
				{
					Question: "What type of PHI does the Security Rule specifically address?",
					Options: []string{
						"Paper records",
						"Verbal communications",
						"Electronic PHI (ePHI)",
						"All forms of PHI",
					},
					CorrectIndex: 2,
				},
			},
		},
		{
			Title:   "Breach Notification Rule",
			Content: "The Breach Notification Rule requires covered entities to notify affected individuals, HHS, and sometimes the media following a breach of unsecured PHI. Notifications must be provided without unreasonable delay, no later than 60 days after discovery. Breaches affecting 500+ individuals require immediate media notification and HHS reporting.",
			KeyPoints: []string{
				"60-day notification deadline from breach discovery",
				"Must notify patients, HHS, and media (for large breaches)",
				"Breach defined as unauthorized access, use, or disclosure",
				"Risk assessment required to determine if breach occurred",
			},
			ComprehensionQuestions: []ComprehensionQuestion{
				{
					Question: "How soon must a breach affecting 500+ individuals be reported to HHS?",
					Options: []string{
						"Immediately",
						"Within 30 days",
						"Within 60 days",
						"Within 90 days",
					},
					CorrectIndex: 2,
				},
			},
		},
		{
			Title:   "Patient Rights Under HIPAA",
			Content: "Patients have seven key rights under HIPAA: right to access their health records, right to request corrections, right to receive accounting of disclosures, right to request restrictions, right to confidential communications, right to file complaints, and right to receive a Notice of Privacy Practices. Pharmacies must honor these rights and have procedures in place to facilitate them.",
			KeyPoints: []string{
				"Right to access records within 30 days of request",
				"Right to request amendments to incorrect information",
				"Right to know who accessed their information",
				"Right to file complaints without retaliation",
			},
		},
		{
			Title:   "Minimum Necessary Standard",
			Content: "The minimum necessary standard requires that covered entities make reasonable efforts to limit PHI uses, disclosures, and requests to only the minimum necessary to accomplish the intended purpose. This does not apply to treatment purposes, disclosures to patients, or when required by law. Pharmacies must implement policies defining what constitutes minimum necessary for routine operations.",
			KeyPoints: []string{
				"Use only information needed for specific purpose",
				"Does not apply to treatment activities",
				"Implement role-based access controls",
				"Regular review of access privileges required",
			},
		},
		{
			Title:   "18 Identifiers of PHI",
			Content: "HIPAA defines 18 specific identifiers that make health information individually identifiable: names, geographic subdivisions smaller than state, dates (except year), telephone/fax numbers, email addresses, SSN, medical record numbers, health plan numbers, account numbers, certificate/license numbers, vehicle identifiers, device identifiers, URLs, IP addresses, biometric identifiers, photos, and any other unique identifying characteristic.",
			KeyPoints: []string{
				"All 18 identifiers must be removed for de-identification",
				"Dates more specific than year are identifiers",
				"ZIP codes must be truncated to first 3 digits only",
				"Photos and biometric data are PHI",
			},
			ComprehensionQuestions: []ComprehensionQuestion{
				{
					Question: "How many identifiers does HIPAA define as PHI?",
					Options: []string{
						"10 identifiers",
						"15 identifiers",
						"18 identifiers",
						"20 identifiers",
					},
					CorrectIndex: 2,
				},
			},
		},
		{
			Title:   "Authorized vs Unauthorized Disclosures",
			Content: "Authorized disclosures require valid patient authorization except for specific exceptions: treatment, payment, healthcare operations, required by law, public health activities, abuse/neglect reporting, law enforcement purposes, and decedents. Unauthorized disclosures include gossiping about patients, leaving records visible to others, discussing cases in public areas, and accessing records without legitimate need.",
			KeyPoints: []string{
				"Treatment purposes don't require authorization",
				"Payment and operations have limited authorization exceptions",
				"Marketing and fundraising require explicit authorization",
				"Any disclosure not specifically permitted is prohibited",
			},
		},
		{
			Title:   "Business Associate Agreements",
			Content: "Business associates are entities that perform functions involving PHI on behalf of covered entities. Examples include billing companies, IT vendors, shredding services, and cloud storage providers. Written Business Associate Agreements (BAAs) are required before sharing any PHI. BAAs must specify permitted uses, require appropriate safeguards, mandate breach reporting, and include termination provisions.",
			KeyPoints: []string{
				"Required before any PHI sharing with vendors",
				"Must be in writing and signed by both parties",
				"Vendor must agree to HIPAA compliance",
				"Covered entity remains liable for vendor breaches",
			},
		},
		{
			Title:   "Proper PHI Disposal",
			Content: "PHI disposal must render information unreadable and indecipherable. Paper records require cross-cut shredding, pulping, burning, or pulverizing. Electronic media requires overwriting, degaussing, or physical destruction. Simply deleting files or throwing papers in trash is insufficient. Pharmacies must have documented disposal procedures and may use certified disposal services.",
			KeyPoints: []string{
				"Cross-cut shredders required for paper PHI",
				"Electronic media must be completely destroyed",
				"Maintain logs of disposal activities",
				"Vendor disposal requires Business Associate Agreement",
			},
		},
		{
			Title:   "Workforce Training Requirements",
			Content: "All workforce members must receive HIPAA training upon hire and annually thereafter. Training must cover Privacy Rule, Security Rule, organizational policies, breach notification procedures, and sanctions for violations. Documentation of training must be maintained for six years. New policies require additional training. Pharmacies must track training completion and maintain records.",
			KeyPoints: []string{
				"Initial training required for all new employees",
				"Annual refresher training mandatory",
				"Training records retained for 6 years",
				"Additional training required for policy changes",
			},
		},
		{
			Title:   "Incident Response Procedures",
			Content: "When a privacy or security incident occurs, immediate action is required: contain the incident, assess the scope, determine if breach occurred, conduct risk assessment, notify appropriate parties if breach is confirmed, document all actions, and implement corrective measures. Pharmacies need written incident response plans with designated response team members and clear escalation procedures.",
			KeyPoints: []string{
				"Immediate containment is first priority",
				"Risk assessment determines if breach occurred",
				"Document everything from discovery onwards",
				"Implement corrective actions to prevent recurrence",
			},
		},
		{
			Title:   "Physical Safeguards",
			Content: "Physical safeguards protect the physical environment where ePHI is stored and accessed. Requirements include facility access controls (locks, badges, visitor logs), workstation security (privacy screens, auto-logout), device controls (encryption, tracking), and secure disposal methods. Computer screens must face away from public areas. Mobile devices need encryption and remote wipe capabilities.",
			KeyPoints: []string{
				"Lock medication rooms and computer areas",
				"Position screens away from public view",
				"Encrypt all mobile devices and laptops",
				"Implement auto-logout after inactivity",
			},
		},
		{
			Title:   "Penalties and Enforcement",
			Content: "HIPAA violations carry civil penalties from $100 to $50,000 per violation, with annual maximum of $1.5 million. Criminal penalties include fines up to $250,000 and imprisonment up to 10 years for violations committed with intent to sell PHI. OCR (Office for Civil Rights) conducts compliance reviews and investigates complaints. Recent enforcement actions show increasing penalties, with several multi-million dollar settlements.",
			KeyPoints: []string{
				"Civil fines range from $100 to $50,000 per violation",
				"Criminal penalties include imprisonment",
				"OCR actively investigates complaints",
				"Willful neglect violations carry steepest penalties",
			},
		},
	}
}

func DefaultQuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{
			Question: "A pharmacy technician accidentally emails a patient's prescription details to the wrong email address. What is the FIRST action they should take?",
			Options: []string{
				"A) Delete the sent email and hope the recipient doesn't open it",
				"B) Immediately notify their supervisor and the Privacy Officer",
				"C) Wait to see if the patient complains before taking action",
				"D) Send a follow-up email asking the recipient to delete it",
			},
			Answer:      "B",
			Explanation: "Immediate notification to supervisor and Privacy Officer is required. This allows for proper breach assessment, timely patient notification if needed, and documentation. Waiting or attempting to handle it alone delays required breach response procedures.",
		},
		{
			Question: "You notice a coworker accessing patient records of celebrities without any work-related reason. What should you do?",
			Options: []string{
				"A) Ignore it - it's not your responsibility",
				"B) Confront the coworker privately first",
				"C) Report immediately to the Privacy Officer or compliance hotline",
				"D) Only report if they access records multiple times",
			},
			Answer:      "C",
			Explanation: "Unauthorized access to PHI must be reported immediately regardless of who is involved. Snooping in medical records is a serious HIPAA violation that can result in termination and criminal penalties. Early reporting protects patients and the organization.",
		},
		{
			Question: "A patient requests copies of their complete prescription history for the past 5 years. Under HIPAA, you must provide this within:",
			Options: []string{
				"A) 24 hours of the request",
				"B) 30 days, with possible 30-day extension",
				"C) 60 days with no exceptions",
				"D) Whatever timeframe is convenient for the pharmacy",
			},
			Answer:      "B",
			Explanation: "HIPAA requires provision of requested records within 30 days of the request. One 30-day extension is permitted if needed, but the patient must be notified of the delay. Reasonable copying fees may be charged.",
		},
		{
			Question: "A pharmaceutical sales representative asks to see which patients are taking a specific medication. Should you provide this information?",
			Options: []string{
				"A) Yes, if they work for the manufacturer of that medication",
				"B) Yes, but only after removing patient names",
				"C) No, unless each patient has signed an authorization",
				"D) Yes, this falls under healthcare operations",
			},
			Answer:      "C",
			Explanation: "Sharing patient lists with sales representatives requires individual patient authorization. This is considered marketing under HIPAA, not healthcare operations. Even de-identified lists of patients taking specific medications could allow re-identification when combined with prescriber information.",
		},
		{
			Question: "When disposing of outdated prescription labels and patient counseling sheets, you should:",
			Options: []string{
				"A) Tear them in half and place in regular trash",
				"B) Use a cross-cut shredder or secure disposal bin",
				"C) Burn them in an incinerator",
				"D) Both B and C are acceptable",
			},
			Answer:      "D",
			Explanation: "PHI must be rendered unreadable and indecipherable before disposal. Cross-cut shredding or incineration both meet this standard. Simply tearing documents or using strip shredders is insufficient. Pharmacies should have documented disposal procedures.",
		},
		{
			Question: "A police officer requests prescription records for a suspect in a criminal investigation. You should:",
			Options: []string{
				"A) Provide immediately - law enforcement requests are always authorized",
				"B) Require a warrant, court order, subpoena, or administrative request",
				"C) Refuse - HIPAA never permits disclosure to police",
				"D) Only provide if the patient is present and consents",
			},
			Answer:      "B",
			Explanation: "Law enforcement requests require proper legal process (warrant, court order, subpoena, or valid administrative request). You cannot simply hand over records to police without proper documentation. Document what was requested and provided, and notify your supervisor.",
		},
		{
			Question: "Which of the following is NOT considered Protected Health Information (PHI)?",
			Options: []string{
				"A) Patient's date of birth",
				"B) Patient's full 5-digit ZIP code",
				"C) Patient's first 3 digits of ZIP code only",
				"D) Patient's phone number",
			},
			Answer:      "C",
			Explanation: "ZIP codes truncated to first 3 digits only (for populations over 20,000) are not PHI identifiers. However, full 5-digit ZIP codes, dates of birth, and phone numbers are all PHI identifiers. This is important for de-identification processes.",
		},
		{
			Question: "Your pharmacy uses a cloud-based prescription management system. Before using this service, you must:",
			Options: []string{
				"A) Obtain patient consent from every patient",
				"B) Execute a Business Associate Agreement with the vendor",
				"C) Only use it for non-sensitive prescriptions",
				"D) Ensure the vendor is located in the United States",
			},
			Answer:      "B",
			Explanation: "Any vendor that stores, processes, or transmits PHI on your behalf is a business associate requiring a signed BAA. This applies to cloud services, billing companies, IT support, and many others. The BAA must be in place before any PHI is shared.",
		},
		{
			Question: "A patient's family member calls asking about the patient's current medications. You should:",
			Options: []string{
				"A) Provide the information - family members have a right to know",
				"B) Verify the caller's identity and relationship before disclosing anything",
				"C) Only disclose if the patient has authorized this person in writing",
				"D) Refuse to confirm the patient is even a customer",
			},
			Answer:      "C",
			Explanation: "Disclosure to family members requires patient authorization unless it's an emergency or the patient is incapacitated and disclosure is in their best interest. Simply verifying identity is insufficient. Maintain a list of authorized representatives for each patient who has granted permission.",
		},
		{
			Question: "Which situation requires a breach notification to be sent to patients?",
			Options: []string{
				"A) A pharmacy employee accidentally views their neighbor's prescription",
				"B) Unencrypted backup tapes containing 1,000 patient records are stolen from a vehicle",
				"C) A fax is sent to a wrong number but retrieved within 5 minutes",
				"D) Paper prescription is found on the floor but no one accessed it",
			},
			Answer:      "B",
			Explanation: "Theft of unencrypted media containing PHI is a presumed breach requiring notification. Option A is an impermissible access needing investigation. Options C and D may not require notification if risk assessment shows low probability of compromise and retrieval/containment was immediate.",
		},
		{
			Question: "The 'minimum necessary' standard means you should:",
			Options: []string{
				"A) Never access any patient information",
				"B) Only access the specific PHI needed for your current task",
				"C) Always access complete patient records for context",
				"D) Minimum necessary doesn't apply to pharmacy staff",
			},
			Answer:      "B",
			Explanation: "Minimum necessary requires limiting access, use, and disclosure to only what's needed for the specific purpose. For example, if verifying insurance, you don't need to view the patient's complete medical history. Implement role-based access controls to enforce this.",
		},
		{
			Question: "How long must you retain HIPAA training documentation?",
			Options: []string{
				"A) 1 year from completion",
				"B) 3 years from completion",
				"C) 6 years from creation or last effective date",
				"D) Indefinitely",
			},
			Answer:      "C",
			Explanation: "HIPAA requires retention of training records for 6 years from date of creation or when last in effect, whichever is later. This applies to all policies, procedures, and documentation required by the Privacy and Security Rules.",
		},
		{
			Question: "A patient posts a negative review on social media mentioning their prescription. Can you respond with details about their care?",
			Options: []string{
				"A) Yes - they posted publicly so you can respond publicly",
				"B) Yes - but only to correct factual errors",
				"C) No - responding would be an unauthorized disclosure of PHI",
				"D) Yes - social media is not covered by HIPAA",
			},
			Answer:      "C",
			Explanation: "You cannot disclose PHI on social media even if the patient posted about their own care. Responding with details confirms they are a patient and reveals PHI. Respond generically without confirming their patient status, and direct them to private channels.",
		},
		{
			Question: "Encryption is:",
			Options: []string{
				"A) Required by HIPAA for all ePHI in all circumstances",
				"B) Addressable under the Security Rule (strongly recommended)",
				"C) Only required for transmissions, not stored data",
				"D) Optional if you have good physical security",
			},
			Answer:      "B",
			Explanation: "Encryption is an 'addressable' specification under the Security Rule, meaning it's strongly recommended but not absolutely required. However, if you don't implement encryption, you must document why alternative measures provide equivalent protection. Most experts recommend encryption for all ePHI.",
		},
		{
			Question: "You discover that your pharmacy has been transmitting ePHI via unencrypted email for years. This is:",
			Options: []string{
				"A) Acceptable if marked 'confidential' in subject line",
				"B) A violation requiring immediate self-reporting to OCR",
				"C) Only a problem if someone complains",
				"D) Acceptable for internal emails only",
			},
			Answer:      "B",
			Explanation: "Transmitting ePHI via unencrypted email violates the Security Rule's transmission security requirements. This systematic violation constitutes willful neglect if not corrected promptly. Self-reporting, immediate cessation, and corrective action plan are required. OCR takes systemic violations seriously.",
		},
	}
}

func DefaultChecklistItems() []ChecklistItem {
	return []ChecklistItem{
		{Text: "Completed Privacy Rule training", Category: "Training", ValidationHint: "Verify completion certificate or records"},
		{Text: "Reviewed Security Rule requirements", Category: "Training", ValidationHint: "Confirm understanding of technical safeguards"},
		{Text: "Understands breach notification timeline (60 days)", Category: "Knowledge", ValidationHint: "Can explain reporting requirements"},
		{Text: "Can identify and report unauthorized access", Category: "Knowledge", ValidationHint: "Knows when to report incidents"},
		{Text: "Knows and applies minimum necessary standard", Category: "Knowledge"},
		{Text: "Can identify all 18 types of Protected Health Information", Category: "Knowledge"},
		{Text: "Understands all patient rights under HIPAA", Category: "Knowledge"},
		{Text: "ePHI encrypted at rest (hard drives, servers)", Category: "Technical", ValidationHint: "Upload encryption policy or configuration evidence"},
		{Text: "ePHI encrypted in transit (secure transmissions)", Category: "Technical"},
		{Text: "Audit logs enabled and monitored regularly", Category: "Technical", ValidationHint: "Upload a recent audit log review document"},
		{Text: "Cross-cut shredders used for all PHI disposal", Category: "Technical"},
		{Text: "Unique login credentials for every staff member", Category: "Technical"},
		{Text: "All staff HIPAA training completed annually", Category: "Compliance", ValidationHint: "Upload training completion records"},
		{Text: "Business Associate Agreements signed with vendors", Category: "Compliance", ValidationHint: "Upload signed BAA document"},
		{Text: "Notice of Privacy Practices provided to all patients", Category: "Compliance"},
	}
}
