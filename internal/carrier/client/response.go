package client

// Формат ответа PrintLabels. Labels приходит как массив целочисленных
// кодов байтов: это бинарный PDF, собирается побайтово без текстовых
// перекодировок.

type printLabelsResponse struct {
	Labels               []int             `json:"Labels"`
	PrintLabelsInfoList  []printLabelInfo  `json:"PrintLabelsInfoList"`
	PrintLabelsErrorList []printLabelError `json:"PrintLabelsErrorList"`
}

type printLabelInfo struct {
	ClientReference string `json:"ClientReference"`
	ParcelID        int64  `json:"ParcelId"`
	ParcelNumber    int64  `json:"ParcelNumber"`
}

type printLabelError struct {
	ErrorCode           string   `json:"ErrorCode"`
	ErrorDescription    string   `json:"ErrorDescription"`
	ClientReferenceList []string `json:"ClientReferenceList"`
}

// DecodeLabelBytes переводит массив кодов байтов в содержимое PDF.
func DecodeLabelBytes(codes []int) []byte {
	data := make([]byte, len(codes))
	for i, c := range codes {
		data[i] = byte(c)
	}
	return data
}
