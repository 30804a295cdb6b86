package models

// CompanyCertificationDetail is a company certification with the company and
// certification it links.
type CompanyCertificationDetail struct {
	Record        CompanyCertification
	Company       Company
	Certification Certification
}

// CompanyTrainingDetail is a company training with the company and training
// it links.
type CompanyTrainingDetail struct {
	Record   CompanyTraining
	Company  Company
	Training Training
}
