package quality

// defaultMedicalTerms is the built-in domain-term dictionary used for
// domain density and specificity scoring. Terms are single lowercase
// tokens; multi-word clinical phrases are matched token by token.
var defaultMedicalTerms = []string{
	"abdominal",
	"acute",
	"allergy",
	"anemia",
	"anesthesia",
	"angina",
	"antibiotic",
	"anticoagulant",
	"arrhythmia",
	"artery",
	"arthritis",
	"asthma",
	"benign",
	"biopsy",
	"bilateral",
	"bradycardia",
	"cardiac",
	"cardiovascular",
	"carcinoma",
	"catheter",
	"chronic",
	"clinical",
	"cognitive",
	"colonoscopy",
	"congestive",
	"coronary",
	"cortisol",
	"diabetes",
	"diagnosis",
	"dialysis",
	"diastolic",
	"discharge",
	"disease",
	"diuretic",
	"dosage",
	"dyspnea",
	"ecg",
	"echocardiogram",
	"edema",
	"embolism",
	"endoscopy",
	"fracture",
	"gastric",
	"gastrointestinal",
	"glucose",
	"hemoglobin",
	"hemorrhage",
	"hepatic",
	"hypertension",
	"hypotension",
	"infarction",
	"infection",
	"inflammation",
	"insulin",
	"intravenous",
	"ischemia",
	"kidney",
	"lesion",
	"leukocyte",
	"ligament",
	"lymph",
	"malignant",
	"medication",
	"metabolic",
	"metastasis",
	"mri",
	"myocardial",
	"nausea",
	"neurological",
	"oncology",
	"palpitation",
	"pathology",
	"patient",
	"pneumonia",
	"prognosis",
	"prophylaxis",
	"pulmonary",
	"radiology",
	"renal",
	"respiratory",
	"sepsis",
	"stenosis",
	"steroid",
	"surgical",
	"symptom",
	"syndrome",
	"systolic",
	"tachycardia",
	"therapy",
	"thrombosis",
	"trauma",
	"tumor",
	"ulcer",
	"ultrasound",
	"vascular",
	"vein",
	"ventricular",
	"vital",
}
